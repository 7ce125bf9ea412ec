package domain

import "encoding/json"

// Records are stored as flat JSON documents. Decimal fields marshal as
// strings so balances and prices round-trip without loss.

// EncodeUser serializes a user record for ledger storage.
func EncodeUser(user *User) ([]byte, error) {
	return json.Marshal(user)
}

// DecodeUser deserializes a stored user record.
func DecodeUser(data []byte) (*User, error) {
	var user User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// EncodeProperty serializes a property record for ledger storage.
func EncodeProperty(property *Property) ([]byte, error) {
	return json.Marshal(property)
}

// DecodeProperty deserializes a stored property record.
func DecodeProperty(data []byte) (*Property, error) {
	var property Property
	if err := json.Unmarshal(data, &property); err != nil {
		return nil, err
	}
	return &property, nil
}
