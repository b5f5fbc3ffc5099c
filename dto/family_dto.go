package dto

type CreateFamilyInput struct {
	Name string `json:"name" binding:"required"`
}

type JoinFamilyInput struct {
	Code string `json:"code" binding:"required"`
	Name string `json:"name" binding:"required"`
}

type FamilyResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type MemberResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
