package capture

import "errors"

var (
	ErrPermissionDenied = errors.New("camera permission not granted")
	ErrBusy             = errors.New("a capture is already in progress")
	ErrNotRecording     = errors.New("not recording")
	ErrNotInReview      = errors.New("no capture under review")
	ErrSubmitPending    = errors.New("capture is already being submitted")
	ErrCaptureStart     = errors.New("could not start recording")
	ErrCaptureStop      = errors.New("could not finish recording")
	ErrSave             = errors.New("could not save session")
	ErrUpload           = errors.New("could not upload session")
)
