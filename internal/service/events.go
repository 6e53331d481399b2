package service

import "fmt"

// EventKind classifies a notification event for the presentation layer.
type EventKind string

const (
	EventReward EventKind = "reward"
	EventUnlock EventKind = "unlock"
	EventStreak EventKind = "streak"
)

// Event is a discrete notification emitted by the engines. The core never
// renders UI; the presentation layer decides how to surface these.
type Event struct {
	Kind    EventKind `json:"kind"`
	Message string    `json:"message"`
}

func rewardEvent(format string, args ...interface{}) Event {
	return Event{Kind: EventReward, Message: fmt.Sprintf(format, args...)}
}

func unlockEvent(biomeName string) Event {
	return Event{Kind: EventUnlock, Message: fmt.Sprintf("New biome unlocked: %s!", biomeName)}
}

func streakEvent(format string, args ...interface{}) Event {
	return Event{Kind: EventStreak, Message: fmt.Sprintf(format, args...)}
}
