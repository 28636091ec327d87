package dto

type CreateUserRequest struct {
	Username string `form:"username" json:"username" binding:"required" msg:"error.username_required"`
}

type UserResponse struct {
	Username string `json:"username"`
	ID       string `json:"_id"`
}

// AddExerciseRequest duration 以字符串接收，便于对非整数给出业务错误
type AddExerciseRequest struct {
	Description string `form:"description" json:"description" binding:"required" msg:"error.description_required"`
	Duration    string `form:"duration" json:"duration" binding:"required" msg:"error.invalid_duration"`
	Date        string `form:"date" json:"date"`
}

type ExerciseResponse struct {
	Username    string `json:"username"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
	ID          string `json:"_id"`
}

type ExerciseLogQuery struct {
	From  string `form:"from"`
	To    string `form:"to"`
	Limit string `form:"limit"`
}

type ExerciseLogEntry struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

type ExerciseLogResponse struct {
	Username string             `json:"username"`
	Count    int                `json:"count"`
	ID       string             `json:"_id"`
	Log      []ExerciseLogEntry `json:"log"`
}
