package casefile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrCaseClosed = errors.New("case is closed")

type Service struct {
	repo *Repo
}

func NewService(repo *Repo) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateCase(name, description, investigator, jurisdiction, caseType string) (*Case, error) {
	item := &Case{
		ID:           uuid.New(),
		Name:         name,
		Description:  description,
		Investigator: investigator,
		Jurisdiction: jurisdiction,
		CaseType:     caseType,
		Status:       StatusActive,
	}

	if err := s.repo.Create(item); err != nil {
		return nil, fmt.Errorf("create case: %w", err)
	}

	return item, nil
}

func (s *Service) GetByID(id uuid.UUID) (Case, error) {
	return s.repo.GetByID(id)
}

func (s *Service) GetByFilters(filters []Filter) ([]Case, error) {
	return s.repo.GetByFilters(filters)
}

// AddAddress tags an address in a case, updating the tag if the address is
// already attached.
func (s *Service) AddAddress(caseID uuid.UUID, address string, tag AddressTag, notes string, riskLevel int) (*CaseAddress, error) {
	item, err := s.activeCase(caseID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetAddress(item.ID, address)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("get case address: %w", err)
	}

	if err == nil {
		existing.Tag = tag
		existing.Notes = notes
		existing.RiskLevel = riskLevel
		if err := s.repo.UpdateAddress(&existing); err != nil {
			return nil, fmt.Errorf("update case address: %w", err)
		}

		return &existing, nil
	}

	created := &CaseAddress{
		ID:        uuid.New(),
		CaseID:    item.ID,
		Address:   strings.ToLower(address),
		Tag:       tag,
		Notes:     notes,
		RiskLevel: riskLevel,
		Status:    "active",
	}
	if err := s.repo.AddAddress(created); err != nil {
		return nil, fmt.Errorf("add case address: %w", err)
	}

	return created, nil
}

func (s *Service) AddNote(caseID uuid.UUID, content, address string) (*Note, error) {
	item, err := s.activeCase(caseID)
	if err != nil {
		return nil, err
	}

	note := &Note{
		ID:      uuid.New(),
		CaseID:  item.ID,
		Content: content,
		Address: strings.ToLower(address),
	}
	if err := s.repo.AddNote(note); err != nil {
		return nil, fmt.Errorf("add note: %w", err)
	}

	return note, nil
}

func (s *Service) AddFinding(caseID uuid.UUID, finding string) (*Finding, error) {
	item, err := s.activeCase(caseID)
	if err != nil {
		return nil, err
	}

	record := &Finding{
		ID:      uuid.New(),
		CaseID:  item.ID,
		Finding: finding,
	}
	if err := s.repo.AddFinding(record); err != nil {
		return nil, fmt.Errorf("add finding: %w", err)
	}

	return record, nil
}

// UpdateStatus moves a case between active, closed and archived.
func (s *Service) UpdateStatus(caseID uuid.UUID, status Status) (*Case, error) {
	item, err := s.repo.GetByID(caseID)
	if err != nil {
		return nil, err
	}

	item.Status = status
	if err := s.repo.Update(&item); err != nil {
		return nil, fmt.Errorf("update case: %w", err)
	}

	return &item, nil
}

func (s *Service) activeCase(caseID uuid.UUID) (Case, error) {
	item, err := s.repo.GetByID(caseID)
	if err != nil {
		return Case{}, err
	}

	if item.Status != StatusActive {
		return Case{}, ErrCaseClosed
	}

	return item, nil
}

// CaseSummary condenses a case for dashboards: counts plus the five most
// recent findings.
type CaseSummary struct {
	CaseID       uuid.UUID     `json:"case_id"`
	Name         string        `json:"name"`
	Investigator string        `json:"investigator"`
	Status       Status        `json:"status"`
	AddressCount int           `json:"address_count"`
	NoteCount    int           `json:"note_count"`
	FindingCount int           `json:"finding_count"`
	Findings     []Finding     `json:"findings"`
	Addresses    []CaseAddress `json:"addresses"`
}

const summaryFindingsLimit = 5

func (s *Service) Summary(caseID uuid.UUID) (*CaseSummary, error) {
	item, err := s.repo.GetByID(caseID)
	if err != nil {
		return nil, err
	}

	return buildSummary(item), nil
}

func buildSummary(item Case) *CaseSummary {
	findings := item.Findings
	if len(findings) > summaryFindingsLimit {
		findings = findings[len(findings)-summaryFindingsLimit:]
	}

	return &CaseSummary{
		CaseID:       item.ID,
		Name:         item.Name,
		Investigator: item.Investigator,
		Status:       item.Status,
		AddressCount: len(item.Addresses),
		NoteCount:    len(item.Notes),
		FindingCount: len(item.Findings),
		Findings:     findings,
		Addresses:    item.Addresses,
	}
}

// Report renders the case as a plain-text investigation document.
func (s *Service) Report(caseID uuid.UUID) (string, error) {
	item, err := s.repo.GetByID(caseID)
	if err != nil {
		return "", err
	}

	return renderReport(item), nil
}

func renderReport(item Case) string {
	var b strings.Builder
	b.WriteString("CASE INVESTIGATION REPORT\n")
	b.WriteString("========================\n")
	fmt.Fprintf(&b, "Case ID: %s\n", item.ID)
	fmt.Fprintf(&b, "Case Name: %s\n", item.Name)
	fmt.Fprintf(&b, "Investigator: %s\n", item.Investigator)
	fmt.Fprintf(&b, "Created: %s\n\n", item.CreatedAt.Format("2006-01-02 15:04:05"))

	fmt.Fprintf(&b, "DESCRIPTION:\n%s\n\n", item.Description)

	b.WriteString("ADDRESSES TRACKED:\n")
	for _, addr := range item.Addresses {
		fmt.Fprintf(&b, "\n- %s\n  Tag: %s\n  Notes: %s\n", addr.Address, addr.Tag, addr.Notes)
	}

	b.WriteString("\nINVESTIGATION NOTES:\n")
	for _, note := range item.Notes {
		fmt.Fprintf(&b, "- %s\n", note.Content)
	}

	if len(item.Findings) > 0 {
		b.WriteString("\nKEY FINDINGS:\n")
		for _, finding := range item.Findings {
			fmt.Fprintf(&b, "- %s\n", finding.Finding)
		}
	}

	return b.String()
}
