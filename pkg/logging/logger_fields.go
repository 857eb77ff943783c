package logging

import (
	"time"
)

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Domain helpers

func Component(name string) Field {
	return String("component", name)
}

func WaypointID(id string) Field {
	return String("waypoint_id", id)
}

func FloorLevel(level int) Field {
	return Int("level", level)
}

func Hops(n int) Field {
	return Int("hops", n)
}

func RequestID(id string) Field {
	return String("request_id", id)
}

func Meters(key string, m float64) Field {
	return Field{Key: key, Value: m}
}

func Latency(d time.Duration) Field {
	return String("latency", d.String())
}

func Count(n int) Field {
	return Int("count", n)
}
