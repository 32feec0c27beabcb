package dto

// CreatePlayerRequest: тело POST /api/players
type CreatePlayerRequest struct {
	Name string `json:"name" binding:"required"`
}

// AddParticipantsRequest: тело POST /api/games/:id/participants
type AddParticipantsRequest struct {
	PlayerIDs []uint `json:"player_ids" binding:"required"`
}

// UpsertScoreRequest: тело PUT /api/games/:id/scores.
// Points: указатель, чтобы отличить явный 0 от отсутствующего поля.
type UpsertScoreRequest struct {
	PlayerID   uint `json:"player_id" binding:"required"`
	CategoryID uint `json:"category_id" binding:"required"`
	Points     *int `json:"points" binding:"required"`
}

// ErrorResponse: формат ошибок API
type ErrorResponse struct {
	Error     string `json:"error"`
	ErrorType string `json:"error_type,omitempty"`
}
