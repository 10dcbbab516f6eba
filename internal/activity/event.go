package activity

import (
	"fmt"
	"time"
)

// EventType can be one of:
//   - session_started
//   - set_logged
//   - session_completed
//   - session_auto_stopped
type EventType string

const (
	EventTypeSessionStarted     EventType = "session_started"
	EventTypeSetLogged          EventType = "set_logged"
	EventTypeSessionCompleted   EventType = "session_completed"
	EventTypeSessionAutoStopped EventType = "session_auto_stopped"
)

func (et EventType) String() string {
	return string(et)
}

func (et EventType) IsValid() bool {
	switch et {
	case EventTypeSessionStarted,
		EventTypeSetLogged,
		EventTypeSessionCompleted,
		EventTypeSessionAutoStopped:
		return true
	default:
		return false
	}
}

// Event is one entry of the append only session activity log.
type Event struct {
	ID        int               `json:"id"`
	Type      EventType         `json:"type"`
	SessionID int               `json:"session_id"`
	UserID    int               `json:"user_id"`
	Timestamp time.Time         `json:"timestamp"`
	Data      map[string]string `json:"data"`
}

type SessionStarted struct {
	SessionID int
	UserID    int
	Date      string
	Timestamp time.Time
}

type SetLogged struct {
	SessionID  int
	UserID     int
	LogID      int
	ExerciseID int
	SetNumber  int
	Reps       int
	Timestamp  time.Time
}

type SessionFinished struct {
	SessionID int
	UserID    int
	// nil for auto stopped sessions
	Calories  *int
	EndTime   time.Time
	Timestamp time.Time
}

func NewSessionStartedEvent(ss SessionStarted) Event {
	return Event{
		Type:      EventTypeSessionStarted,
		SessionID: ss.SessionID,
		UserID:    ss.UserID,
		Timestamp: ss.Timestamp,
		Data: map[string]string{
			"date": ss.Date,
		},
	}
}

func NewSetLoggedEvent(sl SetLogged) Event {
	return Event{
		Type:      EventTypeSetLogged,
		SessionID: sl.SessionID,
		UserID:    sl.UserID,
		Timestamp: sl.Timestamp,
		Data: map[string]string{
			"log_id":      fmt.Sprintf("%d", sl.LogID),
			"exercise_id": fmt.Sprintf("%d", sl.ExerciseID),
			"set_number":  fmt.Sprintf("%d", sl.SetNumber),
			"reps":        fmt.Sprintf("%d", sl.Reps),
		},
	}
}

func NewSessionCompletedEvent(sf SessionFinished) Event {
	event := newSessionFinishedEvent(EventTypeSessionCompleted, sf)
	if sf.Calories != nil {
		event.Data["calories"] = fmt.Sprintf("%d", *sf.Calories)
	}
	return event
}

func NewSessionAutoStoppedEvent(sf SessionFinished) Event {
	return newSessionFinishedEvent(EventTypeSessionAutoStopped, sf)
}

func newSessionFinishedEvent(eventType EventType, sf SessionFinished) Event {
	return Event{
		Type:      eventType,
		SessionID: sf.SessionID,
		UserID:    sf.UserID,
		Timestamp: sf.Timestamp,
		Data: map[string]string{
			"end_time": sf.EndTime.UTC().Format(time.RFC3339),
		},
	}
}
