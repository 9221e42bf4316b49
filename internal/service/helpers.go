package service

import (
	"context"
	"sort"
	"time"

	"github.com/mariakotova/atelier/internal/contract"
	"github.com/mariakotova/atelier/internal/domain"
	"github.com/mariakotova/atelier/internal/repository"
)

const dateKeyLayout = "2006-01-02"

// truncateToDay drops the time-of-day component, keeping the calendar date
// in UTC.
func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// mondayOf returns the Monday of the week containing t.
func mondayOf(t time.Time) time.Time {
	d := truncateToDay(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

func dateKey(t time.Time) string {
	return t.Format(dateKeyLayout)
}

func touch(touched map[string]time.Time, date time.Time) {
	d := truncateToDay(date)
	touched[dateKey(d)] = d
}

func sortedDates(touched map[string]time.Time) []time.Time {
	dates := make([]time.Time, 0, len(touched))
	for _, d := range touched {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// customerNames loads the user's customer book once for card rendering.
func customerNames(ctx context.Context, customers repository.CustomerRepo, userID string) (map[string]string, error) {
	list, err := customers.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(list))
	for _, c := range list {
		names[c.ID] = c.DisplayName()
	}
	return names, nil
}

func toOrderCard(o *domain.Order, names map[string]string) contract.OrderCard {
	card := contract.OrderCard{
		ID:             o.ID,
		Title:          o.Title,
		Color:          o.Color,
		Status:         string(o.Status),
		TotalMinutes:   o.TotalMinutes,
		PlannedMinutes: o.PlannedMinutes,
		PartLabel:      o.PartLabel(),
	}
	if o.CustomerID != nil {
		card.CustomerName = names[*o.CustomerID]
	}
	return card
}

func toOrderCards(rows []*domain.Order, names map[string]string) []contract.OrderCard {
	cards := make([]contract.OrderCard, 0, len(rows))
	for _, o := range rows {
		cards = append(cards, toOrderCard(o, names))
	}
	return cards
}
