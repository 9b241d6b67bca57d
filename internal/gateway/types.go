package gateway

// TokenResponse represents the token returned by the signup and login endpoints
type TokenResponse struct {
	Token string `json:"token"`
}

// SchoolRecord represents one school from the school directory search
type SchoolRecord struct {
	SchoolName          string `json:"schoolName"`
	SchoolCode          string `json:"schoolCode"`
	EducationOfficeCode string `json:"educationOfficeCode"`
	SchoolLevel         string `json:"schoolLevel"`
	Address             string `json:"address,omitempty"`
}

// SelectionOption is a single {code, label} pair for majors or classes.
// Option lists are replaced wholesale on every upstream change, never merged.
type SelectionOption struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// SignupRequest is the composite payload assembled by the signup wizard
type SignupRequest struct {
	Email               string `json:"email" validate:"required,email"`
	Password            string `json:"password" validate:"required,min=8"`
	Name                string `json:"name" validate:"required,max=10,profilename"`
	Nickname            string `json:"nickname" validate:"required,min=2,max=10,nickname"`
	BirthDay            string `json:"birthDay" validate:"required"`
	Gender              string `json:"gender" validate:"required,oneof=MALE FEMALE"`
	Phone               string `json:"phone" validate:"required"`
	SchoolLevel         string `json:"schoolLevel" validate:"required"`
	SchoolCode          string `json:"schoolCode" validate:"required"`
	EducationOfficeCode string `json:"educationOfficeCode" validate:"required"`
	SchoolName          string `json:"schoolName" validate:"required"`
	MajorName           string `json:"majorName"`
	Grade               int    `json:"grade" validate:"required,min=1,max=6"`
	ClassNo             int    `json:"classNo" validate:"required,min=1"`
	AllergyIDs          []int  `json:"allergyIds"`
}

// SocialSignupRequest is the signup payload variant used when the session
// carries a short-lived external-identity token
type SocialSignupRequest struct {
	SignupRequest
	IdentityToken string `json:"identityToken" validate:"required"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Student represents one student row in the admin member table
type Student struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	SchoolName string `json:"schoolName"`
	Phone      string `json:"phone"`
	BirthDay   string `json:"birthDay"`
	Grade      int    `json:"grade"`
	ClassNo    int    `json:"classNo"`
	Points     int    `json:"points"`
}

// StudentProfileUpdate carries the editable fields of a student row
type StudentProfileUpdate struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Grade   int    `json:"grade"`
	ClassNo int    `json:"classNo"`
	Points  int    `json:"points"`
}

// Product represents one product in the points shop or the admin product table
type Product struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Stock    int    `json:"stock"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// ProductUpdate carries the editable fields of a product row
type ProductUpdate struct {
	Name  string `json:"name"`
	Price int    `json:"price"`
	Stock int    `json:"stock"`
}

// CheckInResult is returned by the daily check-in endpoint
type CheckInResult struct {
	AwardedPoints int `json:"awardedPoints"`
	TotalPoints   int `json:"totalPoints"`
}

// MealPhotoResult is returned after the server classifies an uploaded meal photo
type MealPhotoResult struct {
	Classification string `json:"classification"`
	AwardedPoints  int    `json:"awardedPoints"`
}

// ExchangeResult is returned by the product exchange endpoint
type ExchangeResult struct {
	RemainingPoints int `json:"remainingPoints"`
}

// DashboardStats aggregates the five admin activity-log endpoints.
// It is filled all-or-nothing: a failure in any one fetch resets every field.
type DashboardStats struct {
	TotalStudents      int `json:"totalStudents"`
	CheckInsToday      int `json:"checkInsToday"`
	PhotosToday        int `json:"photosToday"`
	ExchangesToday     int `json:"exchangesToday"`
	PointsAwardedToday int `json:"pointsAwardedToday"`
}
