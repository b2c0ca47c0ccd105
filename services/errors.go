package services

import "errors"

var (
	// ErrEmptyDataset is returned when a domain is requested for zero records.
	ErrEmptyDataset = errors.New("empty dataset")
	// ErrEmptyDomain is returned when playback is started with no years to visit.
	ErrEmptyDomain = errors.New("no years to play back")
	// ErrInvalidTransition is returned by Start while running and by Pause while paused.
	ErrInvalidTransition = errors.New("invalid playback transition")
)
