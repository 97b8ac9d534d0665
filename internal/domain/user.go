package domain

// User is a mirrored placeholder user. ID is the domain key and is distinct
// from whatever identity the backing store assigns.
type User struct {
	ID       int64   `json:"id" bson:"id"`
	Name     string  `json:"name" bson:"name"`
	Username string  `json:"username" bson:"username"`
	Email    string  `json:"email" bson:"email"`
	Address  Address `json:"address" bson:"address"`
	Phone    string  `json:"phone" bson:"phone"`
	Website  string  `json:"website" bson:"website"`
	Company  Company `json:"company" bson:"company"`
}

// Address is embedded in User
type Address struct {
	Street  string `json:"street" bson:"street"`
	Suite   string `json:"suite" bson:"suite"`
	City    string `json:"city" bson:"city"`
	Zipcode string `json:"zipcode" bson:"zipcode"`
	Geo     Geo    `json:"geo" bson:"geo"`
}

// Geo carries coordinates as strings, the way upstream sends them
type Geo struct {
	Lat string `json:"lat" bson:"lat"`
	Lng string `json:"lng" bson:"lng"`
}

// Company is embedded in User
type Company struct {
	Name        string `json:"name" bson:"name"`
	CatchPhrase string `json:"catchPhrase" bson:"catchPhrase"`
	BS          string `json:"bs" bson:"bs"`
}

// UserWithPosts is the read-time aggregate returned by GET /users/{id}.
// It is never persisted.
type UserWithPosts struct {
	User
	Posts []PostWithComments `json:"posts"`
}
