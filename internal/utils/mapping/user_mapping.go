package mapping

import (
	"github.com/citycable/cable_collect_app/internal/core/domain"
	"github.com/citycable/cable_collect_app/internal/models"
)

// ToDomainUser converts a model User to a domain User. The password and
// refresh-token hashes never leave the repository layer.
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:        m.UserID,
		Name:          m.Name,
		Username:      m.Username,
		Phone:         m.Phone,
		Role:          domain.UserRole(m.Role),
		WalletBalance: m.WalletBalance,
		IsActive:      m.IsActive,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
		DeletedAt:     m.DeletedAt,
	}
}

// ToModelUser converts a domain User to a model User.
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:        d.UserID,
		Name:          d.Name,
		Username:      d.Username,
		Phone:         d.Phone,
		Role:          string(d.Role),
		WalletBalance: d.WalletBalance,
		IsActive:      d.IsActive,
		AuditFields:   ToModelAuditFields(d.AuditFields),
		DeletedAt:     d.DeletedAt,
	}
}

// ToDomainUserSlice converts a slice of model Users to domain form
func ToDomainUserSlice(ms []models.User) []domain.User {
	ds := make([]domain.User, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUser(m)
	}
	return ds
}
