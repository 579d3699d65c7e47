package request

// FeeComponentsRequest carries the termly fee breakdown in decimal amounts
type FeeComponentsRequest struct {
	Tuition       float64 `json:"tuition" binding:"min=0"`
	Library       float64 `json:"library" binding:"min=0"`
	Lab           float64 `json:"lab" binding:"min=0"`
	Sports        float64 `json:"sports" binding:"min=0"`
	Transport     float64 `json:"transport" binding:"min=0"`
	Miscellaneous float64 `json:"miscellaneous" binding:"min=0"`
}

// IssueSchoolFeesRequest represents a school fee issuance request. Omitting
// class_id issues to every active class.
type IssueSchoolFeesRequest struct {
	ClassID      *string              `json:"class_id" binding:"omitempty,uuid"`
	AcademicYear string               `json:"academic_year" binding:"required"`
	Term         int                  `json:"term" binding:"required,min=1,max=3"`
	Components   FeeComponentsRequest `json:"components" binding:"required"`
	DueDate      string               `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
}

// IssueFeedingFeeRequest represents a feeding fee issuance request
type IssueFeedingFeeRequest struct {
	AcademicYear string  `json:"academic_year" binding:"required"`
	Term         int     `json:"term" binding:"required,min=1,max=3"`
	DailyRate    float64 `json:"daily_rate" binding:"required,gt=0"`
	StartDate    string  `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate      string  `json:"end_date" binding:"required,datetime=2006-01-02"`
}

// StudentFeeFilterRequest represents ledger filter parameters
type StudentFeeFilterRequest struct {
	ClassID     string `form:"class_id" binding:"omitempty,uuid"`
	StudentID   string `form:"student_id" binding:"omitempty,uuid"`
	StructureID string `form:"structure_id" binding:"omitempty,uuid"`
	Status      string `form:"status" binding:"omitempty,oneof=pending partial paid overdue"`
	Page        int    `form:"page"`
	PerPage     int    `form:"per_page"`
}

// FeeStructureFilterRequest represents catalog filter parameters
type FeeStructureFilterRequest struct {
	ClassID      string `form:"class_id" binding:"omitempty,uuid"`
	AcademicYear string `form:"academic_year"`
	Term         *int   `form:"term" binding:"omitempty,min=1,max=3"`
}
