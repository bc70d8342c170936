package models

type College struct {
	ID       string `bson:"_id,omitempty" json:"id"`
	Name     string `bson:"name" json:"name"`
	Location string `bson:"location,omitempty" json:"location,omitempty"`
}

// Course belongs to exactly one college. Applications reference it by the
// (college id, course id) pair.
type Course struct {
	ID        string `bson:"_id,omitempty" json:"id"`
	CollegeID string `bson:"college_id" json:"collegeId"`
	Name      string `bson:"name" json:"name"`
	Degree    string `bson:"degree,omitempty" json:"degree,omitempty"`
}
