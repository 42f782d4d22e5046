package device

type DeviceResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	UserName    string `json:"user_name,omitempty"`
	Fingerprint string `json:"fingerprint"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

type ListDevicesFilter struct {
	UserID *string `json:"user_id"`
	Status *string `json:"status"`
}
