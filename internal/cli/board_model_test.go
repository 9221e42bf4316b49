package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/mariakotova/atelier/internal/contract"
	"github.com/mariakotova/atelier/internal/domain"
	"github.com/mariakotova/atelier/internal/repository"
	"github.com/mariakotova/atelier/internal/service"
	"github.com/mariakotova/atelier/internal/teatest"
	"github.com/mariakotova/atelier/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBoardApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	orders := repository.NewSQLiteOrderRepo(database)
	customers := repository.NewSQLiteCustomerRepo(database)
	settings := service.NewSettingsService(repository.NewSQLitePlannerConfigRepo(database), 8, "1,2,3,4,5")

	return &App{
		Orders:    service.NewOrderService(orders),
		Customers: service.NewCustomerService(customers),
		Settings:  settings,
		Planner:   service.NewPlannerService(orders, customers, settings, testutil.NewTestUoW(database)),
		UserID:    testutil.TestUser,
	}
}

func newBoardDriver(t *testing.T, app *App) *teatest.Driver {
	t.Helper()
	d := teatest.New(t, newBoardModel(app, testutil.TestUser))
	d.DrainInit()
	return d
}

func boardOf(t *testing.T, d *teatest.Driver) *boardModel {
	t.Helper()
	m, ok := d.Model.(*boardModel)
	require.True(t, ok)
	require.NoError(t, m.err)
	require.NotNil(t, m.view)
	return m
}

func TestBoard_NavigationMovesDayCursor(t *testing.T) {
	app := newTestBoardApp(t)
	d := newBoardDriver(t, app)
	require.Len(t, boardOf(t, d).view.Days, 14)

	d.PressKey('l')
	assert.Equal(t, 1, boardOf(t, d).dayCursor)
	d.PressKey('j')
	assert.Equal(t, 8, boardOf(t, d).dayCursor)
	d.PressKey('k')
	assert.Equal(t, 1, boardOf(t, d).dayCursor)
	d.PressKey('h')
	assert.Equal(t, 0, boardOf(t, d).dayCursor)

	// Left at the first day stays put.
	d.PressKey('h')
	assert.Equal(t, 0, boardOf(t, d).dayCursor)
}

func TestBoard_TabSwitchesFocus(t *testing.T) {
	app := newTestBoardApp(t)
	d := newBoardDriver(t, app)

	assert.Equal(t, focusDays, boardOf(t, d).focus)
	d.PressTab()
	assert.Equal(t, focusWaiting, boardOf(t, d).focus)
	d.PressTab()
	assert.Equal(t, focusDays, boardOf(t, d).focus)
}

func TestBoard_QuitKey(t *testing.T) {
	app := newTestBoardApp(t)
	d := newBoardDriver(t, app)

	d.PressKey('q')
	assert.True(t, d.Quitting)
}

func TestBoard_PlaceWaitingOrderOnSelectedDay(t *testing.T) {
	app := newTestBoardApp(t)
	o := &domain.Order{UserID: testutil.TestUser, Title: "blouse", TotalMinutes: 120}
	require.NoError(t, app.Orders.Create(context.Background(), o))

	d := newBoardDriver(t, app)
	require.Len(t, boardOf(t, d).view.Unscheduled, 1)
	assert.Contains(t, d.View(), "blouse")

	d.PressKey('l') // select the second day
	d.PressEnter()  // place, then the board reloads itself

	m := boardOf(t, d)
	assert.Empty(t, m.view.Unscheduled)
	assert.Equal(t, 120, m.view.Days[1].TotalMinutes)
	assert.Contains(t, m.status, "blouse")
}

func TestBoard_PlaceWithNothingWaitingIsNoop(t *testing.T) {
	app := newTestBoardApp(t)
	d := newBoardDriver(t, app)

	d.PressEnter()
	m := boardOf(t, d)
	assert.Empty(t, m.status)
}

func TestBoard_UnscheduleSelectedDay(t *testing.T) {
	app := newTestBoardApp(t)
	ctx := context.Background()
	o := &domain.Order{UserID: testutil.TestUser, Title: "suit", TotalMinutes: 60}
	require.NoError(t, app.Orders.Create(ctx, o))

	d := newBoardDriver(t, app)
	req := contract.NewMoveOrderRequest(testutil.TestUser, o.ID)
	req.Date = &boardOf(t, d).view.Days[0].Date
	_, err := app.Planner.MoveOrder(ctx, req)
	require.NoError(t, err)
	d.PressKey('r') // reload after the out-of-band move
	require.Len(t, boardOf(t, d).view.Days[0].Orders, 1)

	d.PressKey('u')
	m := boardOf(t, d)
	assert.Empty(t, m.view.Days[0].Orders)
	require.Len(t, m.view.Unscheduled, 1)
	assert.True(t, strings.Contains(m.status, "suit"))
}
