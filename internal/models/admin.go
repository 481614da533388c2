package models

// AdminRecord is the stored admin document.
type AdminRecord struct {
	Admin Admin `json:"admin"`
}

// Admin holds the single admin account. Password is a bcrypt hash once the
// server has started at least once.
type Admin struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Claims identifies the holder of a valid admin token.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}
