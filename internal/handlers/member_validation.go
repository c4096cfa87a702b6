package handlers

import (
	"strings"
)

var allowedMembershipTypes = map[string]struct{}{
	"full":    {},
	"partial": {},
}

func validateRegisterRequest(req registerRequest) string {
	if strings.TrimSpace(req.Username) == "" {
		return "username is required"
	}
	if len(req.Password) < 8 {
		return "password must be at least 8 characters"
	}
	if strings.TrimSpace(req.FirstName) == "" {
		return "first_name is required"
	}
	if strings.TrimSpace(req.LastName) == "" {
		return "last_name is required"
	}
	if strings.TrimSpace(req.PhoneNumber) == "" {
		return "phone_number is required"
	}
	if strings.TrimSpace(req.BirthDate) == "" {
		return "birth_date is required"
	}
	if req.MembershipType != "" {
		if err := validateMembershipType(req.MembershipType); err != "" {
			return err
		}
	}
	return ""
}

func validateMemberUpdateRequest(req updateMemberRequest) string {
	if req.FirstName != nil && strings.TrimSpace(*req.FirstName) == "" {
		return "first_name must not be empty"
	}
	if req.LastName != nil && strings.TrimSpace(*req.LastName) == "" {
		return "last_name must not be empty"
	}
	if req.PhoneNumber != nil && strings.TrimSpace(*req.PhoneNumber) == "" {
		return "phone_number must not be empty"
	}
	if req.MembershipType != nil {
		if err := validateMembershipType(*req.MembershipType); err != "" {
			return err
		}
	}
	return ""
}

func validateMembershipType(membershipType string) string {
	if _, ok := allowedMembershipTypes[strings.TrimSpace(membershipType)]; !ok {
		return "membership_type must be one of: full, partial"
	}
	return ""
}
