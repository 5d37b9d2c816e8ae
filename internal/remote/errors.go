package remote

import (
	"errors"
)

var (
	ErrTransport      = errors.New("transport connection failed")
	ErrHandshake      = errors.New("SSH handshake failed")
	ErrAuth           = errors.New("SSH authentication failed")
	ErrSubsessionInit = errors.New("SFTP subsession initialization failed")
	ErrPathConflict   = errors.New("path exists and is not a directory")
	ErrIsDirectory    = errors.New("uploading directories is not supported")
	ErrSessionClosed  = errors.New("session is closed")
)
