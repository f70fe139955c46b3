package entity

type Role string

const (
	RoleFarmer Role = "FARMER"
	RoleBuyer  Role = "BUYER"
)

func (r Role) Valid() bool {
	return r == RoleFarmer || r == RoleBuyer
}
