package dummydb

import (
	"sort"
	"strconv"
	"strings"

	"github.com/campuspay/campuspay/core/registry"
)

var studentPKCount int

type registryRepository struct {
	db *studentTable
}

var _ registry.Repository = (*registryRepository)(nil) // interface compliance check

func NewRegistryRepository(db *DB) registry.Repository {
	return &registryRepository{db: db.student}
}

func (repo *registryRepository) query() []registry.Record {
	recs := make([]registry.Record, 0, len(repo.db.table))
	for _, rec := range repo.db.table {
		recs = append(recs, *rec)
	}
	return recs
}

func (repo *registryRepository) CheckEmailUniqueness(email string) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, rec := range repo.query() {
		if rec.Email == email {
			return registry.ErrEmailExists
		}
	}
	return nil
}

func (repo *registryRepository) CreateRecord(rec registry.Record) (registry.Record, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	studentPKCount++
	rec.ID = strconv.Itoa(studentPKCount)
	repo.db.table[rec.ID] = &rec
	return rec, nil
}

func (repo *registryRepository) GetRecordByID(id string) (registry.Record, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if rec, ok := repo.db.table[id]; ok {
		return *rec, nil
	}
	return registry.Record{}, registry.ErrNotFound
}

func (repo *registryRepository) FilterRecords(filter registry.QueryFilter) ([]registry.Record, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	recs := repo.query()

	// records with search keyword matching name, student id or email ?
	if filter.Search != "" {
		var filtered []registry.Record
		for _, rec := range recs {
			if strings.Contains(strings.ToLower(rec.Name), strings.ToLower(filter.Search)) ||
				strings.Contains(strings.ToLower(rec.StudentID), strings.ToLower(filter.Search)) ||
				strings.Contains(strings.ToLower(rec.Email), strings.ToLower(filter.Search)) {
				filtered = append(filtered, rec)
			}
		}
		recs = filtered
	}
	if recs != nil && filter.Status != "" {
		var filtered []registry.Record
		for _, rec := range recs {
			if rec.Status == filter.Status {
				filtered = append(filtered, rec)
			}
		}
		recs = filtered
	}

	// newest registrations first
	sort.Slice(recs, func(i, j int) bool { return recs[i].RegisteredAt.After(recs[j].RegisteredAt) })
	return recs, nil
}

func (repo *registryRepository) UpdateRecordStatus(id, status string) (registry.Record, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	rec, ok := repo.db.table[id]
	if !ok {
		return registry.Record{}, registry.ErrNotFound
	}
	rec.Status = status
	return *rec, nil
}

func (repo *registryRepository) DeleteRecord(id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	delete(repo.db.table, id)
	return nil
}
