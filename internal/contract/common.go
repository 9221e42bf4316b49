package contract

type PlanErrorCode string

const (
	PlanErrOrderNotFound  PlanErrorCode = "ORDER_NOT_FOUND"
	PlanErrInvalidDate    PlanErrorCode = "INVALID_DATE"
	PlanErrCannotSchedule PlanErrorCode = "CANNOT_SCHEDULE"
	PlanErrDataIntegrity  PlanErrorCode = "DATA_INTEGRITY"
	PlanErrInternal       PlanErrorCode = "INTERNAL_ERROR"
)

type PlanError struct {
	Code    PlanErrorCode
	Message string
}

func (e *PlanError) Error() string {
	return string(e.Code) + ": " + e.Message
}
