package contract

import (
	"time"

	"github.com/alexanderramin/cyclesync/internal/domain"
	"github.com/alexanderramin/cyclesync/internal/scheduler"
)

// AutoDraftRequest asks for a fresh randomized plan for one week.
type AutoDraftRequest struct {
	Owner     domain.Owner
	WeekStart time.Time
	DryRun    bool    // compute the plan without touching the store
	NoOverlap bool    // place picks with FirstFitSlots
	Seed      *uint64 // reproducible draw; nil seeds from the clock
	Bands     string  // "fixed" (default) or "proportional"
}

func NewAutoDraftRequest(owner domain.Owner, weekStart time.Time) AutoDraftRequest {
	return AutoDraftRequest{
		Owner:     owner,
		WeekStart: weekStart,
		Bands:     "fixed",
	}
}

type AutoDraftResponse struct {
	WeekStart time.Time
	DryRun    bool
	Deleted   int
	Created   []domain.ScheduledActivity
	Days      []scheduler.DayDraft
	// Skipped is set when the owner has no active activities; the week was
	// left untouched.
	Skipped bool
}

type DraftErrorCode string

const (
	DraftErrInvalidWeek   DraftErrorCode = "INVALID_WEEK"
	DraftErrDataIntegrity DraftErrorCode = "DATA_INTEGRITY"
	DraftErrStoreFailure  DraftErrorCode = "STORE_FAILURE"
)

type DraftError struct {
	Code    DraftErrorCode
	Message string
	Err     error
}

func (e *DraftError) Error() string {
	if e.Err != nil {
		return string(e.Code) + ": " + e.Message + ": " + e.Err.Error()
	}
	return string(e.Code) + ": " + e.Message
}

func (e *DraftError) Unwrap() error { return e.Err }
