package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type DistributeUniqueRequest struct {
	RegistryID string   `json:"registry_id"`
	Recipients []string `json:"recipients"`
	AssetIDs   []uint64 `json:"asset_ids"`
}

type DistributeEditionsRequest struct {
	RegistryID string   `json:"registry_id"`
	Recipients []string `json:"recipients"`
	AssetIDs   []uint64 `json:"asset_ids"`
	Quantities []uint64 `json:"quantities"`
}

type DistributeResponse struct {
	Status string `json:"status"`
	Data   struct {
		RegistryID string `json:"registry_id"`
		Mode       string `json:"mode"`
		Recipients int    `json:"recipients"`
	} `json:"data"`
}

type AuthorizationResponse struct {
	Status string `json:"status"`
	Data   struct {
		RegistryID string `json:"registry_id"`
		Authorized bool   `json:"authorized"`
	} `json:"data"`
}
