package domain

// User is an account record. It is created at registration and never changed.
type User struct {
	Uname          string `json:"uname" bson:"uname"`
	HashedPassword string `json:"-" bson:"hashed_password"`
}

type Credentials struct {
	Uname    string `json:"uname"`
	Password string `json:"password"`
}

// Session is what a successful login hands to the transport layer.
type Session struct {
	Uname     string
	Token     string
	ExpiresIn int64 // seconds
}
