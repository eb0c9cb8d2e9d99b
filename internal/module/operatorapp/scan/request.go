package scan

type GetManyScanAttemptRequest struct {
	EventID   string `validate:"required"`
	Page      int64  `validate:"min=1"`
	Size      int64  `validate:"min=1,max=100"`
	ValidOnly bool   `validate:"-"`
}

type GetAdmittedCountRequest struct {
	EventID string `validate:"required"`
}
