package config

import (
	"errors"
)

var (
	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrDBHostEmpty error if config db.host is empty.
	ErrDBHostEmpty = errors.New("toml config db.host can not be empty")

	// ErrDBNameEmpty error if config db.name is empty.
	ErrDBNameEmpty = errors.New("toml config db.name can not be empty")
)
