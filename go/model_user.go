package usersserver

// UserPayload is the body accepted when creating a user.
type UserPayload struct {
	FirstName string `json:"firstName" binding:"required,notblank"`
	LastName  string `json:"lastName" binding:"required,notblank"`
	Email     string `json:"email" binding:"required,email"`
}

type Link struct {
	Href string `json:"href"`
}

type Links struct {
	Self Link `json:"self"`
}

// User is the public representation of an account.
type User struct {
	Id        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Active    bool   `json:"active"`
	Links     Links  `json:"_links"`
}

// UserPage is the paged search envelope.
type UserPage struct {
	Items      []User `json:"items"`
	PageNumber int    `json:"pageNumber"`
	TotalPages int    `json:"totalPages"`
}

type userSearchQuery struct {
	LastNameFragment *string `form:"lastNameFragment" binding:"required"`
	PageNumber       int     `form:"pageNumber,default=0" binding:"min=0"`
	PageSize         int     `form:"pageSize,default=5" binding:"min=1"`
}
