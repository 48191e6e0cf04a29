package dto

type RegisterInput struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	FullName string `json:"fullname" form:"fullname"`
	Password string `json:"password" form:"password"`
	// Remote refs produced by the media uploader before the service is called.
	AvatarURL     string `json:"-"`
	CoverImageURL string `json:"-"`
}
