package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type EnrollRequest struct {
	Payment float64 `json:"payment"`
}

type EnrollResponse struct {
	Status string `json:"status"`
	Data   struct {
		Account    string `json:"account"`
		Subscribed bool   `json:"subscribed"`
		Until      string `json:"until"`
	} `json:"data"`
}

type CustomEnrollRequest struct {
	Account         string `json:"account"`
	DurationSeconds int64  `json:"duration_seconds"`
}

type CustomEnrollResponse struct {
	Status string `json:"status"`
	Data   struct {
		Account    string `json:"account"`
		Subscribed bool   `json:"subscribed"`
		Until      string `json:"until"`
	} `json:"data"`
}

type RemoveRequest struct {
	Account string `json:"account"`
}

type RemoveResponse struct {
	Status string `json:"status"`
}

type SweepRequest struct {
	Accounts []string `json:"accounts"`
}

type SweepResponse struct {
	Status string `json:"status"`
	Data   struct {
		Candidates int `json:"candidates"`
		Expired    int `json:"expired"`
	} `json:"data"`
}

type SubscriberResponse struct {
	Status string `json:"status"`
	Data   struct {
		Account    string `json:"account"`
		Known      bool   `json:"known"`
		Subscribed bool   `json:"subscribed"`
		Until      string `json:"until,omitempty"`
	} `json:"data"`
}
