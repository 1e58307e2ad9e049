package transfer

type ResourceCreation struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Capacity    int    `json:"capacity"`
	Active      bool   `json:"active"`
}

type ResourceUpdate struct {
	ID int64 `json:"id"`
	ResourceCreation
}

type ResourceRemove struct {
	ID int64 `json:"id"`
}
