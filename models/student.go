package models

import "time"

// Student is the root document of the students collection. AuthUID is the
// opaque identity supplied by the auth provider; it is a lookup field and is
// never assumed to equal the document id.
type Student struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	AuthUID   string    `bson:"auth_uid,omitempty" json:"authUid,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
