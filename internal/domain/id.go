package domain

import "strconv"

// EntityID - монотонно выдаваемый идентификатор. Никогда не переиспользуется.
type EntityID int64

func (id EntityID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// ParseEntityID разбирает десятичное представление.
func ParseEntityID(s string) (EntityID, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return EntityID(v), nil
}
