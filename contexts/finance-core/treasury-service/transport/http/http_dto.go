package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type DepositRequest struct {
	Amount float64 `json:"amount"`
}

type DepositResponse struct {
	Status string `json:"status"`
	Data   struct {
		CumulativeReceived float64 `json:"cumulative_received"`
		Balance            float64 `json:"balance"`
	} `json:"data"`
}

type BalanceResponse struct {
	Status string `json:"status"`
	Data   struct {
		Balance float64 `json:"balance"`
	} `json:"data"`
}

type WithdrawResponse struct {
	Status string `json:"status"`
	Data   struct {
		Withdrawn float64 `json:"withdrawn"`
	} `json:"data"`
}

type FeeConfigResponse struct {
	Status string `json:"status"`
	Data   struct {
		TransactionFee    float64   `json:"transaction_fee"`
		SubscriptionTiers []float64 `json:"subscription_tiers"`
	} `json:"data"`
}

type SetTransactionFeeRequest struct {
	TransactionFee float64 `json:"transaction_fee"`
}

type SetSubscriptionTiersRequest struct {
	SubscriptionTiers []float64 `json:"subscription_tiers"`
}
