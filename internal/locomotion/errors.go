package locomotion

import "errors"

// Construction errors. These are the only hard failures in the package;
// degraded runtime inputs are normalized instead of raised.
var (
	// ErrMissingFootNode indicates a nil left or right foot node.
	ErrMissingFootNode = errors.New("locomotion: missing foot node")

	// ErrMissingMixer indicates a nil animation mixer.
	ErrMissingMixer = errors.New("locomotion: missing animation mixer")

	// ErrMissingClip indicates an absent mandatory clip (idle/walk/run).
	ErrMissingClip = errors.New("locomotion: missing required clip")

	// ErrInvalidMaxSpeed indicates a non-positive MaxLinearSpeed.
	ErrInvalidMaxSpeed = errors.New("locomotion: max linear speed must be positive")
)
