package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/mariakotova/atelier/internal/contract"
	"github.com/mariakotova/atelier/internal/domain"
	"github.com/mariakotova/atelier/internal/repository"
	"github.com/mariakotova/atelier/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Monday.
var monday = time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

type plannerFixture struct {
	orders   repository.OrderRepo
	orderSvc OrderService
	custSvc  CustomerService
	svc      PlannerService
}

func newPlannerFixture(t *testing.T, hoursPerDay int) (context.Context, *plannerFixture) {
	t.Helper()
	database := testutil.NewTestDB(t)
	orders := repository.NewSQLiteOrderRepo(database)
	customers := repository.NewSQLiteCustomerRepo(database)
	settings := NewSettingsService(repository.NewSQLitePlannerConfigRepo(database), hoursPerDay, "1,2,3,4,5")
	svc := NewPlannerService(orders, customers, settings, testutil.NewTestUoW(database), NewLogUseCaseObserver(io.Discard))

	return context.Background(), &plannerFixture{
		orders:   orders,
		orderSvc: NewOrderService(orders),
		custSvc:  NewCustomerService(customers),
		svc:      svc,
	}
}

func (f *plannerFixture) createOrder(t *testing.T, ctx context.Context, title string, totalMinutes int) *domain.Order {
	t.Helper()
	o := testutil.NewTestOrder(title, testutil.WithTotalMinutes(totalMinutes))
	require.NoError(t, f.orderSvc.Create(ctx, o))
	return o
}

func (f *plannerFixture) move(t *testing.T, ctx context.Context, orderID string, date time.Time) *contract.MoveOrderResponse {
	t.Helper()
	req := contract.NewMoveOrderRequest(testutil.TestUser, orderID)
	req.Date = &date
	resp, err := f.svc.MoveOrder(ctx, req)
	require.NoError(t, err)
	return resp
}

func (f *plannerFixture) dayTotal(t *testing.T, ctx context.Context, date time.Time) int {
	t.Helper()
	rows, err := f.orders.ListOnDate(ctx, testutil.TestUser, date)
	require.NoError(t, err)
	total := 0
	for _, row := range rows {
		total += row.PlannedMinutes
	}
	return total
}

func TestMoveOrder_FitsSingleDay(t *testing.T) {
	ctx, f := newPlannerFixture(t, 8)
	o := f.createOrder(t, ctx, "blouse", 120)

	resp := f.move(t, ctx, o.ID, monday)

	require.NotNil(t, resp.Order.PlannedDate)
	assert.True(t, resp.Order.PlannedDate.Equal(monday))
	assert.Equal(t, 120, resp.Order.PlannedMinutes)
	assert.Equal(t, 1, resp.Order.TotalParts)
	assert.Empty(t, resp.Parts)
	require.NotNil(t, resp.Order.OrderInDay)
	assert.Equal(t, 0, *resp.Order.OrderInDay)
}

func TestMoveOrder_SplitsAcrossDays(t *testing.T) {
	ctx, f := newPlannerFixture(t, 8)
	o := f.createOrder(t, ctx, "wedding dress", 600)

	resp := f.move(t, ctx, o.ID, monday)

	assert.Equal(t, 480, resp.Order.PlannedMinutes)
	assert.Equal(t, 2, resp.Order.TotalParts)
	require.Len(t, resp.Parts, 1)
	part := resp.Parts[0]
	assert.Equal(t, 120, part.PlannedMinutes)
	assert.Equal(t, 2, part.PartNumber)
	assert.False(t, part.IsMainPart)
	require.NotNil(t, part.PlannedDate)
	assert.True(t, part.PlannedDate.Equal(monday.AddDate(0, 0, 1)))

	// Minutes are conserved across the split.
	assert.Equal(t, 600, resp.Order.PlannedMinutes+part.PlannedMinutes)
}

func TestMoveOrder_TopsUpPartialDay(t *testing.T) {
	ctx, f := newPlannerFixture(t, 8)
	existing := f.createOrder(t, ctx, "existing", 450)
	f.move(t, ctx, existing.ID, monday)

	o := f.createOrder(t, ctx, "incoming", 100)
	resp := f.move(t, ctx, o.ID, monday)

	assert.Equal(t, 30, resp.Order.PlannedMinutes)
	require.Len(t, resp.Parts, 1)
	assert.Equal(t, 70, resp.Parts[0].PlannedMinutes)
	assert.Equal(t, 480, f.dayTotal(t, ctx, monday))
}

func TestMoveOrder_SkipsFullyBookedDay(t *testing.T) {
	ctx, f := newPlannerFixture(t, 8)
	full := f.createOrder(t, ctx, "full day", 480)
	f.move(t, ctx, full.ID, monday)

	o := f.createOrder(t, ctx, "pushed", 100)
	resp := f.move(t, ctx, o.ID, monday)

	// The booked day is skipped entirely; the whole order lands on Tuesday.
	require.NotNil(t, resp.Order.PlannedDate)
	assert.True(t, resp.Order.PlannedDate.Equal(monday.AddDate(0, 0, 1)))
	assert.Equal(t, 100, resp.Order.PlannedMinutes)
	assert.Empty(t, resp.Parts)
}

func TestMoveOrder_ReplacementIsIdempotent(t *testing.T) {
	ctx, f := newPlannerFixture(t, 8)
	o := f.createOrder(t, ctx, "coat", 600)

	first := f.move(t, ctx, o.ID, monday)
	second := f.move(t, ctx, o.ID, monday)

	assert.Equal(t, first.Order.PlannedMinutes, second.Order.PlannedMinutes)
	require.Len(t, second.Parts, len(first.Parts))
	parts, err := f.orders.ListSecondaryParts(ctx, o.ID)
	require.NoError(t, err)
	assert.Len(t, parts, 1)
	assert.Equal(t, 600, f.dayTotal(t, ctx, monday)+f.dayTotal(t, ctx, monday.AddDate(0, 0, 1)))
}

func TestMoveOrder_Unschedule_DestroysParts(t *testing.T) {
	ctx, f := newPlannerFixture(t, 8)
	o := f.createOrder(t, ctx, "suit", 600)
	f.move(t, ctx, o.ID, monday)

	req := contract.NewMoveOrderRequest(testutil.TestUser, o.ID)
	resp, err := f.svc.MoveOrder(ctx, req)
	require.NoError(t, err)

	assert.Nil(t, resp.Order.PlannedDate)
	assert.Nil(t, resp.Order.OrderInDay)
	assert.Zero(t, resp.Order.PlannedMinutes)
	assert.Equal(t, 1, resp.Order.TotalParts)

	parts, err := f.orders.ListSecondaryParts(ctx, o.ID)
	require.NoError(t, err)
	assert.Empty(t, parts)
	assert.Zero(t, f.dayTotal(t, ctx, monday))
}

func TestMoveOrder_UnscheduleViaPart_RemovesWholeOrder(t *testing.T) {
	ctx, f := newPlannerFixture(t, 8)
	o := f.createOrder(t, ctx, "suit", 600)
	moved := f.move(t, ctx, o.ID, monday)
	require.Len(t, moved.Parts, 1)

	req := contract.NewMoveOrderRequest(testutil.TestUser, moved.Parts[0].ID)
	resp, err := f.svc.MoveOrder(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, o.ID, resp.Order.ID)
	assert.Nil(t, resp.Order.PlannedDate)
	assert.Zero(t, f.dayTotal(t, ctx, monday))
	assert.Zero(t, f.dayTotal(t, ctx, monday.AddDate(0, 0, 1)))
}

func TestMoveOrder_NotFound(t *testing.T) {
	ctx, f := newPlannerFixture(t, 8)

	date := monday
	req := contract.NewMoveOrderRequest(testutil.TestUser, "missing")
	req.Date = &date
	_, err := f.svc.MoveOrder(ctx, req)

	var planErr *contract.PlanError
	require.ErrorAs(t, err, &planErr)
	assert.Equal(t, contract.PlanErrOrderNotFound, planErr.Code)
}

func TestMoveOrder_OtherUsersOrderIsHidden(t *testing.T) {
	ctx, f := newPlannerFixture(t, 8)
	o := testutil.NewTestOrder("not mine", testutil.WithOrderUser("user-2"))
	require.NoError(t, f.orders.Create(ctx, o))

	date := monday
	req := contract.NewMoveOrderRequest(testutil.TestUser, o.ID)
	req.Date = &date
	_, err := f.svc.MoveOrder(ctx, req)

	var planErr *contract.PlanError
	require.ErrorAs(t, err, &planErr)
	assert.Equal(t, contract.PlanErrOrderNotFound, planErr.Code)
}

func TestMoveOrder_DryRun_LeavesNothingBehind(t *testing.T) {
	ctx, f := newPlannerFixture(t, 8)
	o := f.createOrder(t, ctx, "tentative", 600)

	date := monday
	req := contract.NewMoveOrderRequest(testutil.TestUser, o.ID)
	req.Date = &date
	req.DryRun = true
	resp, err := f.svc.MoveOrder(ctx, req)
	require.NoError(t, err)

	// The response shows the would-be plan.
	assert.Equal(t, 480, resp.Order.PlannedMinutes)
	require.Len(t, resp.Parts, 1)

	// Nothing was persisted.
	got, err := f.orders.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Nil(t, got.PlannedDate)
	assert.Zero(t, f.dayTotal(t, ctx, monday))
}

func TestMoveOrder_NormalizesDayRanks(t *testing.T) {
	ctx, f := newPlannerFixture(t, 8)
	a := f.createOrder(t, ctx, "a", 60)
	b := f.createOrder(t, ctx, "b", 60)
	c := f.createOrder(t, ctx, "c", 60)
	f.move(t, ctx, a.ID, monday)
	f.move(t, ctx, b.ID, monday)
	f.move(t, ctx, c.ID, monday)

	rows, err := f.orders.ListOnDate(ctx, testutil.TestUser, monday)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for i, row := range rows {
		require.NotNil(t, row.OrderInDay)
		assert.Equal(t, i, *row.OrderInDay)
	}
}

func TestMoveOrder_SecondaryPartOverflow_ResplitsLargestMain(t *testing.T) {
	// 2h capacity keeps the numbers small.
	ctx, f := newPlannerFixture(t, 2)

	a := f.createOrder(t, ctx, "a", 100)
	f.move(t, ctx, a.ID, monday) // mon: a=100

	b := f.createOrder(t, ctx, "b", 140)
	f.move(t, ctx, b.ID, monday) // mon: b=20, tue: b part=120

	c := f.createOrder(t, ctx, "c", 150)
	moved := f.move(t, ctx, c.ID, monday.AddDate(0, 0, 2)) // wed: c=120, thu: c part=30
	require.Len(t, moved.Parts, 1)

	// Dropping c's 30-minute slice onto Monday pushes it to 150 of 120.
	// The rebalancer re-splits a, the largest main row there.
	resp := f.move(t, ctx, moved.Parts[0].ID, monday)
	assert.Empty(t, resp.Warnings)

	assert.LessOrEqual(t, f.dayTotal(t, ctx, monday), 120)

	gotA, err := f.orders.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 70, gotA.PlannedMinutes)
	assert.Equal(t, 2, gotA.TotalParts)
	aParts, err := f.orders.ListSecondaryParts(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, aParts, 1)
	assert.Equal(t, 30, aParts[0].PlannedMinutes)
}

func TestMoveOrder_OverflowWithNothingToSplit_Warns(t *testing.T) {
	// 1h capacity; both days end up holding only secondary slices.
	ctx, f := newPlannerFixture(t, 1)

	a := f.createOrder(t, ctx, "a", 120)
	f.move(t, ctx, a.ID, monday) // mon: a=60, tue: a part=60

	b := f.createOrder(t, ctx, "b", 100)
	moved := f.move(t, ctx, b.ID, monday.AddDate(0, 0, 2)) // wed: b=60, thu: b part=40
	require.Len(t, moved.Parts, 1)

	tuesday := monday.AddDate(0, 0, 1)
	resp := f.move(t, ctx, moved.Parts[0].ID, tuesday)

	require.NotEmpty(t, resp.Warnings)
	assert.Equal(t, 100, f.dayTotal(t, ctx, tuesday))
}

func TestMoveOrder_StillOverAfterSplit_Warns(t *testing.T) {
	// 1h capacity; the day's split budget is spent but the remaining
	// secondary slices alone still exceed the limit.
	ctx, f := newPlannerFixture(t, 1)

	d := f.createOrder(t, ctx, "fitting", 40)
	f.move(t, ctx, d.ID, monday.AddDate(0, 0, 1)) // tue: d=40

	a := f.createOrder(t, ctx, "dress", 100)
	f.move(t, ctx, a.ID, monday) // mon: a=60, tue: a part=20, wed: a part=20

	b := f.createOrder(t, ctx, "coat", 110)
	moved := f.move(t, ctx, b.ID, monday.AddDate(0, 0, 3)) // thu: b=60, fri: b part=50
	require.Len(t, moved.Parts, 1)

	// Dropping b's 50-minute slice onto Tuesday (110 of 60) re-splits d,
	// which moves off the day entirely; the slices left behind still sum
	// to 70 and there is nothing more to split.
	tuesday := monday.AddDate(0, 0, 1)
	resp := f.move(t, ctx, moved.Parts[0].ID, tuesday)

	require.NotEmpty(t, resp.Warnings)
	assert.Contains(t, resp.Warnings[0], "still")
	assert.Equal(t, 70, f.dayTotal(t, ctx, tuesday))

	gotD, err := f.orders.GetByID(ctx, d.ID)
	require.NoError(t, err)
	require.NotNil(t, gotD.PlannedDate)
	assert.True(t, gotD.PlannedDate.Equal(monday.AddDate(0, 0, 2)))
	assert.Equal(t, 40, gotD.PlannedMinutes)
}

func TestView_DefaultFortnightFromMonday(t *testing.T) {
	ctx, f := newPlannerFixture(t, 8)
	cust := testutil.NewTestCustomer("Anna", "Petrova")
	require.NoError(t, f.custSvc.Create(ctx, cust))

	scheduled := f.createOrder(t, ctx, "scheduled", 600)
	f.move(t, ctx, scheduled.ID, monday)
	waiting := testutil.NewTestOrder("waiting", testutil.WithCustomer(cust.ID))
	require.NoError(t, f.orderSvc.Create(ctx, waiting))

	req := contract.NewPlannerViewRequest(testutil.TestUser)
	start := monday.AddDate(0, 0, 2) // mid-week anchor snaps back to Monday
	req.StartDate = &start
	resp, err := f.svc.View(ctx, req)
	require.NoError(t, err)

	assert.True(t, resp.StartDate.Equal(monday))
	assert.Equal(t, 480, resp.CapacityMinutes)
	require.Len(t, resp.Days, 14)

	assert.Equal(t, 480, resp.Days[0].TotalMinutes)
	assert.Equal(t, 100, resp.Days[0].OccupancyPct)
	assert.True(t, resp.Days[0].IsWorkDay)
	assert.False(t, resp.Days[5].IsWorkDay) // Saturday

	// Secondary parts never show up as standalone cards but their minutes count.
	require.Len(t, resp.Days[0].Orders, 1)
	assert.Equal(t, 120, resp.Days[1].TotalMinutes)

	require.Len(t, resp.Unscheduled, 1)
	assert.Equal(t, "waiting", resp.Unscheduled[0].Title)
	assert.Equal(t, "Petrova Anna", resp.Unscheduled[0].CustomerName)
}

func TestDayOn_SingleDayDrillDown(t *testing.T) {
	ctx, f := newPlannerFixture(t, 8)
	o := f.createOrder(t, ctx, "jacket", 200)
	f.move(t, ctx, o.ID, monday)

	resp, err := f.svc.DayOn(ctx, testutil.TestUser, monday.Add(13*time.Hour))
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)
	assert.True(t, resp.Days[0].Date.Equal(monday))
	assert.Equal(t, 200, resp.Days[0].TotalMinutes)
}

func TestCheckDayLimit_UnscheduledUsesTotalMinutes(t *testing.T) {
	ctx, f := newPlannerFixture(t, 8)
	existing := f.createOrder(t, ctx, "existing", 450)
	f.move(t, ctx, existing.ID, monday)

	o := f.createOrder(t, ctx, "incoming", 100)
	check, err := f.svc.CheckDayLimit(ctx, contract.DayLimitRequest{
		UserID:  testutil.TestUser,
		OrderID: o.ID,
		Date:    monday,
	})
	require.NoError(t, err)

	assert.Equal(t, 480, check.CapacityMinutes)
	assert.Equal(t, 450, check.CommittedMinutes)
	assert.Equal(t, 100, check.OrderMinutes)
	assert.Equal(t, 550, check.ProjectedMinutes)
	assert.True(t, check.Exceeds)
	assert.Equal(t, 70, check.OverMinutes)
}

func TestCheckDayLimit_ScheduledSliceUsesItsAllocation(t *testing.T) {
	ctx, f := newPlannerFixture(t, 8)
	o := f.createOrder(t, ctx, "split", 600)
	moved := f.move(t, ctx, o.ID, monday)
	require.Len(t, moved.Parts, 1)

	check, err := f.svc.CheckDayLimit(ctx, contract.DayLimitRequest{
		UserID:  testutil.TestUser,
		OrderID: moved.Parts[0].ID,
		Date:    monday.AddDate(0, 0, 2),
	})
	require.NoError(t, err)

	assert.Equal(t, 120, check.OrderMinutes)
	assert.Zero(t, check.CommittedMinutes)
	assert.False(t, check.Exceeds)
}

func TestCheckDayLimit_OrderAlreadyOnDate_KeepsTotalUnchanged(t *testing.T) {
	ctx, f := newPlannerFixture(t, 8)
	other := testutil.NewTestOrder("other", testutil.WithTotalMinutes(440), testutil.WithPlacement(monday, 440, 0))
	require.NoError(t, f.orders.Create(ctx, other))
	own := testutil.NewTestOrder("own", testutil.WithTotalMinutes(60), testutil.WithPlacement(monday, 60, 1))
	require.NoError(t, f.orders.Create(ctx, own))

	check, err := f.svc.CheckDayLimit(ctx, contract.DayLimitRequest{
		UserID:  testutil.TestUser,
		OrderID: own.ID,
		Date:    monday,
	})
	require.NoError(t, err)

	// The order's own slice is subtracted before being re-added, so the
	// projection equals what the day already holds.
	assert.Equal(t, 440, check.CommittedMinutes)
	assert.Equal(t, 60, check.OrderMinutes)
	assert.Equal(t, 500, check.ProjectedMinutes)
	assert.True(t, check.Exceeds)
	assert.Equal(t, 20, check.OverMinutes)
}

func TestCheckDayLimit_UnknownOrder(t *testing.T) {
	ctx, f := newPlannerFixture(t, 8)
	_, err := f.svc.CheckDayLimit(ctx, contract.DayLimitRequest{
		UserID:  testutil.TestUser,
		OrderID: "missing",
		Date:    monday,
	})

	var planErr *contract.PlanError
	require.ErrorAs(t, err, &planErr)
	assert.Equal(t, contract.PlanErrOrderNotFound, planErr.Code)
	assert.True(t, errors.As(err, &planErr))
}
