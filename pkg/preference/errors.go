package preference

import "errors"

var (
	ErrProfileNotFound = errors.New("preference: user profile not found")
	ErrNoProfiles      = errors.New("preference: profile store not configured")
	ErrAnonymous       = errors.New("preference: request is not authenticated")
	ErrPersist         = errors.New("preference: failed to persist signal")
)
