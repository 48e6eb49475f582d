package monitor

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Filter interface {
	Apply(*gorm.DB) *gorm.DB
}

type AddressFilter struct {
	Address string
}

func (f AddressFilter) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("lower(address) = lower(?)", f.Address)
}

type SeverityFilter struct {
	Severity Severity
}

func (f SeverityFilter) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("severity = ?", f.Severity)
}

type UnacknowledgedFilter struct{}

func (f UnacknowledgedFilter) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("acknowledged = ?", false)
}

type PageFilter struct {
	Limit  int
	Offset int
}

func (f PageFilter) Apply(db *gorm.DB) *gorm.DB {
	return db.Limit(f.Limit).Offset(f.Offset)
}

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) CreateJob(job *Job) error {
	return r.db.Create(job).Error
}

func (r *Repo) UpdateJob(job *Job) error {
	return r.db.Save(job).Error
}

func (r *Repo) GetJobByAddress(address string) (Job, error) {
	var job Job
	err := r.db.
		Where("lower(address) = lower(?)", address).
		First(&job).
		Error

	return job, err
}

func (r *Repo) DeleteJob(job *Job) error {
	return r.db.Delete(job).Error
}

func (r *Repo) GetActiveJobs() ([]Job, error) {
	var jobs []Job
	err := r.db.
		Where("active = ?", true).
		Find(&jobs).
		Error

	return jobs, err
}

func (r *Repo) GetJobs() ([]Job, error) {
	var jobs []Job
	err := r.db.Find(&jobs).Error

	return jobs, err
}

func (r *Repo) CountJobs() (int64, error) {
	var count int64
	err := r.db.Model(&Job{}).Count(&count).Error

	return count, err
}

func (r *Repo) CreateAlert(alert *Alert) error {
	return r.db.Create(alert).Error
}

func (r *Repo) GetAlertByID(id uuid.UUID) (Alert, error) {
	var alert Alert
	err := r.db.
		Where("id = ?", id).
		First(&alert).
		Error

	return alert, err
}

func (r *Repo) UpdateAlert(alert *Alert) error {
	return r.db.Save(alert).Error
}

func (r *Repo) GetAlertsByFilters(filters []Filter) ([]Alert, error) {
	db := r.db.Model(&Alert{})
	for _, f := range filters {
		db = f.Apply(db)
	}

	var alerts []Alert
	err := db.
		Order("created_at desc").
		Find(&alerts).
		Error

	return alerts, err
}

func (r *Repo) CountAlerts(onlyUnacknowledged bool) (int64, error) {
	db := r.db.Model(&Alert{})
	if onlyUnacknowledged {
		db = db.Where("acknowledged = ?", false)
	}

	var count int64
	err := db.Count(&count).Error

	return count, err
}

// knownSet decodes the job's counterparty list into a lookup set.
func (j *Job) knownSet() map[string]struct{} {
	set := make(map[string]struct{})
	for _, addr := range strings.Split(j.KnownCounterparties, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			set[strings.ToLower(addr)] = struct{}{}
		}
	}

	return set
}

func (j *Job) storeKnownSet(set map[string]struct{}) {
	list := make([]string, 0, len(set))
	for addr := range set {
		list = append(list, addr)
	}

	j.KnownCounterparties = strings.Join(list, ",")
}
