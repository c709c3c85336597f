package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrGoalTitleEmpty      = errors.New("goal title cannot be empty")
	ErrGoalTitleTooLong    = errors.New("goal title is too long (max 100 chars)")
	ErrGoalInvalidUserID   = errors.New("invalid user id")
	ErrInvalidCurrency     = errors.New("invalid currency (must be a 3-letter ISO code)")
	ErrInvalidLanguage     = errors.New("invalid language (must be ru or en)")
	ErrInvalidReminderDay  = errors.New("invalid reminder day (must be monday..sunday)")
	ErrInvalidStartAmount  = errors.New("starting amount cannot be negative")
	ErrTotalWeeksTooLarge  = errors.New("total weeks is too large (max 520)")
	ErrGoalImageURLTooLong = errors.New("image url is too long (max 2048 chars)")
)

var currencyRegex = regexp.MustCompile(`^[A-Z]{3}$`)

const (
	GoalStatusActive      = "active"
	GoalStatusCompleted   = "completed"
	DefaultTargetAmount   = 1378
	DefaultTotalWeeks     = 52
	DefaultStartingAmount = 50
	DefaultCurrency       = "RUB"
	DefaultLanguage       = "ru"
	DefaultGenre          = "drama"
	DefaultReminderDay    = "monday"
	MaxTitleLen           = 100
	MaxTotalWeeks         = 520
	MaxImageURLLen        = 2048
)

var reminderDays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

type Goal struct {
	ID             string     `json:"id" db:"id"`
	UserID         string     `json:"userId" db:"user_id"`
	Title          string     `json:"title" db:"title"`
	ImageURL       string     `json:"imageUrl,omitempty" db:"image_url"`
	Language       string     `json:"language" db:"language"`
	Currency       string     `json:"currency" db:"currency"`
	TargetAmount   int        `json:"targetAmount" db:"target_amount"`
	StartingAmount int        `json:"startingAmount" db:"starting_amount"`
	TotalWeeks     int        `json:"totalWeeks" db:"total_weeks"`
	Genre          string     `json:"genre" db:"genre"`
	ReminderDay    string     `json:"reminderDay" db:"reminder_day"`
	Status         string     `json:"status" db:"status"`
	CompletedAt    *time.Time `json:"completedAt,omitempty" db:"completed_at"`
	CreatedAt      time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time  `json:"updatedAt" db:"updated_at"`
}

// GoalOptions carries the user supplied attributes of a new goal. Omitted
// (nil or empty) values fall back to the challenge defaults.
type GoalOptions struct {
	Title          string
	TargetAmount   *int
	TotalWeeks     *int
	StartingAmount *int
	ImageURL       string
	Language       string
	Currency       string
	Genre          string
	ReminderDay    string
}

func (o GoalOptions) withDefaults() GoalOptions {
	if o.TargetAmount == nil {
		target := DefaultTargetAmount
		o.TargetAmount = &target
	}
	if o.TotalWeeks == nil {
		weeks := DefaultTotalWeeks
		o.TotalWeeks = &weeks
	}
	if o.StartingAmount == nil {
		start := DefaultStartingAmount
		o.StartingAmount = &start
	}
	o.Language = strings.ToLower(strings.TrimSpace(o.Language))
	if o.Language == "" {
		o.Language = DefaultLanguage
	}
	o.Currency = strings.ToUpper(strings.TrimSpace(o.Currency))
	if o.Currency == "" {
		o.Currency = DefaultCurrency
	}
	o.Genre = strings.TrimSpace(o.Genre)
	if o.Genre == "" {
		o.Genre = DefaultGenre
	}
	o.ReminderDay = strings.ToLower(strings.TrimSpace(o.ReminderDay))
	if o.ReminderDay == "" {
		o.ReminderDay = DefaultReminderDay
	}
	o.ImageURL = strings.TrimSpace(o.ImageURL)
	return o
}

func (o GoalOptions) validate() error {
	title := strings.TrimSpace(o.Title)
	if title == "" {
		return ErrGoalTitleEmpty
	}
	if len([]rune(title)) > MaxTitleLen {
		return ErrGoalTitleTooLong
	}
	if *o.TargetAmount <= 0 {
		return ErrInvalidTargetAmount
	}
	if *o.TotalWeeks <= 0 {
		return ErrInvalidTotalWeeks
	}
	if *o.TotalWeeks > MaxTotalWeeks {
		return ErrTotalWeeksTooLarge
	}
	if *o.StartingAmount < 0 {
		return ErrInvalidStartAmount
	}
	if !currencyRegex.MatchString(o.Currency) {
		return ErrInvalidCurrency
	}
	if o.Language != "ru" && o.Language != "en" {
		return ErrInvalidLanguage
	}
	if _, ok := reminderDays[o.ReminderDay]; !ok {
		return ErrInvalidReminderDay
	}
	if len(o.ImageURL) > MaxImageURLLen {
		return ErrGoalImageURLTooLong
	}
	return nil
}

func NewGoal(userID string, opts GoalOptions) (*Goal, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrGoalInvalidUserID
	}

	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	return &Goal{
		ID:             uuid.New().String(),
		UserID:         userID,
		Title:          strings.TrimSpace(opts.Title),
		ImageURL:       opts.ImageURL,
		Language:       opts.Language,
		Currency:       opts.Currency,
		TargetAmount:   *opts.TargetAmount,
		StartingAmount: *opts.StartingAmount,
		TotalWeeks:     *opts.TotalWeeks,
		Genre:          opts.Genre,
		ReminderDay:    opts.ReminderDay,
		Status:         GoalStatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// SyncStatus moves the goal between active and completed based on whether
// every week has been deposited. It reports whether anything changed.
func (g *Goal) SyncStatus(finished bool, now time.Time) bool {
	switch {
	case finished && g.Status != GoalStatusCompleted:
		g.Status = GoalStatusCompleted
		g.CompletedAt = &now
	case !finished && g.Status != GoalStatusActive:
		g.Status = GoalStatusActive
		g.CompletedAt = nil
	default:
		return false
	}
	g.UpdatedAt = now
	return true
}

func (g *Goal) IsActive() bool {
	return g.Status == GoalStatusActive
}

// ReminderWeekday returns the weekday the owner wants to be reminded on.
func (g *Goal) ReminderWeekday() time.Weekday {
	if day, ok := reminderDays[g.ReminderDay]; ok {
		return day
	}
	return time.Monday
}

// ReminderDayName maps a weekday to the lowercase name stored on goals.
func ReminderDayName(day time.Weekday) string {
	return strings.ToLower(day.String())
}
