package specification

import "gorm.io/gorm"

type ByRevisionID struct {
	ID int64
}

func (s ByRevisionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ID)
}

type ByRevisionIDs struct {
	IDs []int64
}

func (s ByRevisionIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id IN ?", s.IDs)
}
