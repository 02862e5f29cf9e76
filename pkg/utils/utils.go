package utils

import (
	"fmt"
	"log"
	"strconv"
)

// GoSafe runs the given function in a new goroutine and recovers from any
// panic.
func GoSafe(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[Panic Recovered] %v", r)
			}
		}()
		fn()
	}()
}

func ToPointer[T any](value T) *T {
	return &value
}

func ContainsString(slice []string, str string) bool {
	for _, item := range slice {
		if item == str {
			return true
		}
	}
	return false
}

func FormatPercentage(value float64) string {
	return fmt.Sprintf("%+.2f%%", value)
}

// FormatFloat renders a float with two decimals, or "" for a nil pointer.
// Used for the optional journal columns.
func FormatFloat(value *float64) string {
	if value == nil {
		return ""
	}
	return strconv.FormatFloat(*value, 'f', 2, 64)
}

// FormatInt renders an int, or "" for a nil pointer.
func FormatInt(value *int) string {
	if value == nil {
		return ""
	}
	return strconv.Itoa(*value)
}
