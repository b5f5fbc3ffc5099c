package dto

type CreateItemInput struct {
	Name     string  `json:"name" binding:"required"`
	Category string  `json:"category" binding:"required"`
	Urgency  *string `json:"urgency"`
	Note     *string `json:"note"`
}

type UpdateItemInput struct {
	Name     *string `json:"name"`
	Category *string `json:"category"`
	Urgency  *string `json:"urgency"`
	Note     *string `json:"note"`
	Done     *bool   `json:"done"`
}
