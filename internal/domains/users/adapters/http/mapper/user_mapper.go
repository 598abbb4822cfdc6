package mapper

import userdomain "github.com/Apurer/shop-users-api/internal/domains/users/domain"

// User represents the transport-level user payload. The activation token never leaves the domain.
type User struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	Active    bool
}

// ToDomainUser converts a transport user into a new pending domain user.
func ToDomainUser(model User) (*userdomain.User, error) {
	return userdomain.NewUser(model.FirstName, model.LastName, model.Email)
}

// FromDomainUser converts a domain user into a transport representation.
func FromDomainUser(user *userdomain.User) User {
	if user == nil {
		return User{}
	}
	return User{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Active:    user.Active,
	}
}
