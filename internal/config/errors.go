package config

import (
	"errors"
)

var (
	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrMaxUploadSizeInvalid error if the request body limit is not positive.
	ErrMaxUploadSizeInvalid = errors.New("toml config webserver.maxUploadSize must be greater than 0")

	// ErrEmptyDefaultDir error if no local shared directory is configured.
	ErrEmptyDefaultDir = errors.New("toml config storage.defaultDir can not be empty")

	// ErrUnknownSettingsBackend error if settings.backend is neither file nor sqlite.
	ErrUnknownSettingsBackend = errors.New("toml config settings.backend must be file or sqlite")

	// ErrEmptySettingsPath error if the selected settings backend has no path.
	ErrEmptySettingsPath = errors.New("toml config settings path can not be empty for the selected backend")

	// ErrEmptyInterface error if the access point interface is not set.
	ErrEmptyInterface = errors.New("toml config accessPoint.interface can not be empty")
)
