package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mariakotova/atelier/internal/contract"
	"github.com/mariakotova/atelier/internal/db"
	"github.com/mariakotova/atelier/internal/domain"
	"github.com/mariakotova/atelier/internal/planner"
	"github.com/mariakotova/atelier/internal/repository"
)

// errDryRunRollback aborts a dry-run transaction after the plan was computed.
var errDryRunRollback = errors.New("dry run rollback")

type plannerService struct {
	orders    repository.OrderRepo
	customers repository.CustomerRepo
	settings  SettingsService
	uow       db.UnitOfWork
	observer  UseCaseObserver
}

func NewPlannerService(
	orders repository.OrderRepo,
	customers repository.CustomerRepo,
	settings SettingsService,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) PlannerService {
	return &plannerService{
		orders:    orders,
		customers: customers,
		settings:  settings,
		uow:       uow,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *plannerService) View(ctx context.Context, req contract.PlannerViewRequest) (*contract.PlannerViewResponse, error) {
	now := time.Now().UTC()

	cfg, err := s.settings.Get(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("loading planner settings: %w", err)
	}
	capacity := planner.DailyCapacityMinutes(cfg)

	weeks := req.Weeks
	if weeks < 1 {
		weeks = 1
	}
	anchor := now
	if req.StartDate != nil {
		anchor = *req.StartDate
	}
	start := mondayOf(anchor)

	days := make([]planner.DayView, 0, weeks*7)
	for i := 0; i < weeks*7; i++ {
		date := start.AddDate(0, 0, i)
		rows, err := s.orders.ListOnDate(ctx, req.UserID, date)
		if err != nil {
			return nil, fmt.Errorf("loading rows for %s: %w", dateKey(date), err)
		}
		days = append(days, planner.BuildDayView(date, rows, capacity, planner.IsWorkDay(cfg, date)))
	}

	unscheduled, err := s.orders.ListUnscheduled(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("loading unscheduled orders: %w", err)
	}
	names, err := customerNames(ctx, s.customers, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("loading customers: %w", err)
	}

	return &contract.PlannerViewResponse{
		GeneratedAt:     now,
		StartDate:       start,
		Weeks:           weeks,
		CapacityMinutes: capacity,
		Days:            days,
		Unscheduled:     toOrderCards(unscheduled, names),
	}, nil
}

func (s *plannerService) DayOn(ctx context.Context, userID string, date time.Time) (*contract.PlannerViewResponse, error) {
	now := time.Now().UTC()
	date = truncateToDay(date)

	cfg, err := s.settings.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading planner settings: %w", err)
	}
	capacity := planner.DailyCapacityMinutes(cfg)

	rows, err := s.orders.ListOnDate(ctx, userID, date)
	if err != nil {
		return nil, fmt.Errorf("loading rows for %s: %w", dateKey(date), err)
	}

	return &contract.PlannerViewResponse{
		GeneratedAt:     now,
		StartDate:       date,
		Weeks:           1,
		CapacityMinutes: capacity,
		Days:            []planner.DayView{planner.BuildDayView(date, rows, capacity, planner.IsWorkDay(cfg, date))},
	}, nil
}

func (s *plannerService) MoveOrder(ctx context.Context, req contract.MoveOrderRequest) (resp *contract.MoveOrderResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"order_id": req.OrderID, "dry_run": req.DryRun}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "move-order",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	now := startedAt
	if req.Now != nil {
		now = req.Now.UTC()
	}

	cfg, err := s.settings.Get(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("loading planner settings: %w", err)
	}
	capacity := planner.DailyCapacityMinutes(cfg)

	var target *time.Time
	if req.Date != nil {
		d := truncateToDay(*req.Date)
		target = &d
		fields["date"] = dateKey(d)
	} else {
		fields["date"] = "unscheduled"
	}

	var moved *domain.Order
	var parts []*domain.Order
	var warnings []string
	touched := make(map[string]time.Time)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txOrders := repository.NewSQLiteOrderRepo(tx)

		o, err := txOrders.GetByID(ctx, req.OrderID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return &contract.PlanError{Code: contract.PlanErrOrderNotFound, Message: "order not found: " + req.OrderID}
			}
			return err
		}
		if o.UserID != req.UserID {
			return &contract.PlanError{Code: contract.PlanErrOrderNotFound, Message: "order not found: " + req.OrderID}
		}
		if o.PlannedDate != nil {
			touch(touched, *o.PlannedDate)
		}

		switch {
		case target == nil:
			o, err = s.unscheduleOrder(ctx, txOrders, o, touched, now)
			if err != nil {
				return err
			}
		case o.IsSecondaryPart():
			// A single slice moves as-is; its allocation is untouched so
			// the per-order minute sum holds.
			d := *target
			o.PlannedDate = &d
			o.OrderInDay = req.Rank
			o.UpdatedAt = now
			if err := txOrders.Update(ctx, o); err != nil {
				return err
			}
			touch(touched, d)
		default:
			if err := s.placeMain(ctx, txOrders, o, *target, req.Rank, capacity, touched, now); err != nil {
				return err
			}
		}
		warnings, err = s.rebalance(ctx, txOrders, req.UserID, capacity, touched, now)
		if err != nil {
			return err
		}

		// Reload so the response reflects the normalized ranks.
		moved, err = txOrders.GetByID(ctx, o.ID)
		if err != nil {
			return err
		}
		if moved.IsMainPart {
			parts, err = txOrders.ListSecondaryParts(ctx, moved.ID)
			if err != nil {
				return err
			}
		}

		if req.DryRun {
			return errDryRunRollback
		}
		return nil
	})
	if err != nil && !errors.Is(err, errDryRunRollback) {
		return nil, err
	}
	err = nil

	fields["affected_dates"] = len(touched)
	return &contract.MoveOrderResponse{
		Order:         moved,
		Parts:         parts,
		AffectedDates: sortedDates(touched),
		Warnings:      warnings,
	}, nil
}

func (s *plannerService) CheckDayLimit(ctx context.Context, req contract.DayLimitRequest) (*contract.DayLimitCheck, error) {
	cfg, err := s.settings.Get(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("loading planner settings: %w", err)
	}
	capacity := planner.DailyCapacityMinutes(cfg)

	o, err := s.orders.GetByID(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &contract.PlanError{Code: contract.PlanErrOrderNotFound, Message: "order not found: " + req.OrderID}
		}
		return nil, err
	}

	date := truncateToDay(req.Date)
	committed, err := s.orders.SumPlannedMinutesOnDate(ctx, req.UserID, date, o.ID)
	if err != nil {
		return nil, fmt.Errorf("loading committed minutes: %w", err)
	}

	// A row already carrying an allocation contributes its slice; anything
	// else contributes its full duration.
	orderMinutes := o.TotalMinutes
	if o.PlannedDate != nil && o.PlannedMinutes > 0 {
		orderMinutes = o.PlannedMinutes
	}

	check := &contract.DayLimitCheck{
		Date:             date,
		CapacityMinutes:  capacity,
		CommittedMinutes: committed,
		OrderMinutes:     orderMinutes,
		ProjectedMinutes: committed + orderMinutes,
	}
	if check.ProjectedMinutes > capacity {
		check.Exceeds = true
		check.OverMinutes = check.ProjectedMinutes - capacity
	}
	return check, nil
}

// unscheduleOrder pulls a logical order off the calendar. A secondary part
// resolves to its parent first so the whole order comes off together.
func (s *plannerService) unscheduleOrder(ctx context.Context, txOrders *repository.SQLiteOrderRepo, o *domain.Order, touched map[string]time.Time, now time.Time) (*domain.Order, error) {
	if o.IsSecondaryPart() {
		parent, err := txOrders.GetByID(ctx, *o.ParentOrderID)
		if err != nil {
			return nil, fmt.Errorf("loading parent order: %w", err)
		}
		if parent.PlannedDate != nil {
			touch(touched, *parent.PlannedDate)
		}
		o = parent
	}

	parts, err := txOrders.ListSecondaryParts(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	for _, p := range parts {
		if p.PlannedDate != nil {
			touch(touched, *p.PlannedDate)
		}
	}
	if err := txOrders.DeleteSecondaryParts(ctx, o.ID); err != nil {
		return nil, err
	}

	o.Unschedule(now)
	o.TotalParts = 1
	if err := txOrders.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// placeMain replaces the order's split plan: old secondary parts are
// destroyed, the duration is re-split from the target date, and the new
// plan is written back as the main row plus fresh part rows.
func (s *plannerService) placeMain(ctx context.Context, txOrders *repository.SQLiteOrderRepo, o *domain.Order, target time.Time, rank *int, capacity int, touched map[string]time.Time, now time.Time) error {
	parts, err := txOrders.ListSecondaryParts(ctx, o.ID)
	if err != nil {
		return err
	}
	for _, p := range parts {
		if p.PlannedDate != nil {
			touch(touched, *p.PlannedDate)
		}
	}
	if err := txOrders.DeleteSecondaryParts(ctx, o.ID); err != nil {
		return err
	}

	allocs, err := s.splitFrom(ctx, txOrders, o, target, capacity)
	if err != nil {
		return err
	}

	o.OrderInDay = rank
	return s.applySplit(ctx, txOrders, o, allocs, touched, now)
}

func (s *plannerService) splitFrom(ctx context.Context, txOrders *repository.SQLiteOrderRepo, o *domain.Order, target time.Time, capacity int) ([]planner.PartAllocation, error) {
	committed := func(date time.Time) (int, error) {
		return txOrders.SumPlannedMinutesOnDate(ctx, o.UserID, date, o.ID)
	}
	allocs, err := planner.Split(o.TotalMinutes, target, capacity, committed)
	if err != nil {
		if errors.Is(err, planner.ErrCannotSchedule) {
			return nil, &contract.PlanError{Code: contract.PlanErrCannotSchedule, Message: err.Error()}
		}
		return nil, err
	}
	return allocs, nil
}

func (s *plannerService) applySplit(ctx context.Context, txOrders *repository.SQLiteOrderRepo, o *domain.Order, allocs []planner.PartAllocation, touched map[string]time.Time, now time.Time) error {
	first := allocs[0]
	d := first.Date
	o.PlannedDate = &d
	o.PlannedMinutes = first.Minutes
	o.PartNumber = 1
	o.TotalParts = len(allocs)
	o.UpdatedAt = now
	if err := txOrders.Update(ctx, o); err != nil {
		return err
	}
	touch(touched, d)

	for _, alloc := range allocs[1:] {
		part := secondaryPartOf(o, alloc, now)
		if err := txOrders.Create(ctx, part); err != nil {
			return fmt.Errorf("creating part %d: %w", alloc.PartNumber, err)
		}
		touch(touched, alloc.Date)
	}
	return nil
}

// secondaryPartOf builds a part row from an allocation. The price stays on
// the main row only.
func secondaryPartOf(o *domain.Order, alloc planner.PartAllocation, now time.Time) *domain.Order {
	d := alloc.Date
	parentID := o.ID
	return &domain.Order{
		ID:             uuid.New().String(),
		UserID:         o.UserID,
		Title:          o.Title,
		CustomerID:     o.CustomerID,
		Category:       o.Category,
		Status:         o.Status,
		Comment:        o.Comment,
		Color:          o.Color,
		PlannedDate:    &d,
		PlannedMinutes: alloc.Minutes,
		IsMainPart:     false,
		PartNumber:     alloc.PartNumber,
		ParentOrderID:  &parentID,
		TotalParts:     o.TotalParts,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// rebalance renumbers every touched day and resolves overflow by
// re-splitting the largest splittable main row. A day is split at most once
// per mutation; anything still over capacity afterwards is reported as a
// warning instead of looping.
func (s *plannerService) rebalance(ctx context.Context, txOrders *repository.SQLiteOrderRepo, userID string, capacity int, touched map[string]time.Time, now time.Time) ([]string, error) {
	var warnings []string
	splitDone := make(map[string]bool)
	queue := sortedDates(touched)

	for len(queue) > 0 {
		date := queue[0]
		queue = queue[1:]
		key := dateKey(date)

		rows, err := txOrders.ListOnDate(ctx, userID, date)
		if err != nil {
			return nil, err
		}
		rows = planner.NormalizeSequence(rows, now)
		for _, row := range rows {
			if err := txOrders.Update(ctx, row); err != nil {
				return nil, err
			}
		}

		total := 0
		for _, row := range rows {
			total += row.PlannedMinutes
		}
		if total <= capacity {
			continue
		}

		if splitDone[key] {
			warnings = append(warnings, fmt.Sprintf("%s is still %d min over capacity after splitting", key, total-capacity))
			continue
		}
		cand := planner.PickSplitCandidate(rows, planner.MinSplitMinutes)
		if cand == nil {
			warnings = append(warnings, fmt.Sprintf("%s is %d min over capacity with nothing left to split", key, total-capacity))
			continue
		}
		splitDone[key] = true

		newDates, err := s.resplit(ctx, txOrders, cand, capacity, touched, now)
		if err != nil {
			return nil, err
		}
		for _, nd := range newDates {
			nk := dateKey(nd)
			if !splitDone[nk] && !containsDate(queue, nk) {
				queue = append(queue, nd)
			}
		}
		// Revisit once more to renumber after the split settled.
		queue = append(queue, date)
	}
	return warnings, nil
}

// resplit rebuilds the candidate's plan from its own planned date.
func (s *plannerService) resplit(ctx context.Context, txOrders *repository.SQLiteOrderRepo, cand *domain.Order, capacity int, touched map[string]time.Time, now time.Time) ([]time.Time, error) {
	var dates []time.Time

	parts, err := txOrders.ListSecondaryParts(ctx, cand.ID)
	if err != nil {
		return nil, err
	}
	for _, p := range parts {
		if p.PlannedDate != nil {
			touch(touched, *p.PlannedDate)
			dates = append(dates, truncateToDay(*p.PlannedDate))
		}
	}
	if err := txOrders.DeleteSecondaryParts(ctx, cand.ID); err != nil {
		return nil, err
	}

	allocs, err := s.splitFrom(ctx, txOrders, cand, *cand.PlannedDate, capacity)
	if err != nil {
		return nil, err
	}
	if err := s.applySplit(ctx, txOrders, cand, allocs, touched, now); err != nil {
		return nil, err
	}
	for _, alloc := range allocs {
		dates = append(dates, alloc.Date)
	}
	return dates, nil
}

func containsDate(queue []time.Time, key string) bool {
	for _, d := range queue {
		if dateKey(d) == key {
			return true
		}
	}
	return false
}
