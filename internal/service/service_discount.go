package service

import "github.com/limitclean/limitclean/models"

// EffectiveDiscount resolves the discount actually applied to a new entry
// from the creator's role:
//   - sellers always use their profile's SellerDiscount,
//   - representatives always use their profile's DefaultDiscount,
//   - admins use the discount from the payload,
//   - anyone without a matching profile gets 0.
func EffectiveDiscount(user models.User, payloadDiscount float64, rep *models.Representative, seller *models.Seller) float64 {
	switch user.Role {
	case models.RoleSeller:
		if seller != nil {
			return seller.SellerDiscount
		}
		return 0
	case models.RoleRepresentative:
		if rep != nil {
			return rep.DefaultDiscount
		}
		return 0
	case models.RoleAdmin:
		return payloadDiscount
	default:
		return 0
	}
}
