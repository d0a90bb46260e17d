package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/glowdesk/crm-api/internal/models"
	"github.com/glowdesk/crm-api/internal/repository"
)

// The mocks below back the service tests with in-memory maps. Each Create
// method counts its calls so tests can assert exactly how many rows a failed
// operation would have written.

type mockLeadRepo struct {
	leads   map[uuid.UUID]*models.Lead
	creates int
	updates int
}

func newMockLeadRepo() *mockLeadRepo {
	return &mockLeadRepo{leads: make(map[uuid.UUID]*models.Lead)}
}

func (m *mockLeadRepo) GetByID(id uuid.UUID) (*models.Lead, error) {
	lead, ok := m.leads[id]
	if !ok {
		return nil, fmt.Errorf("lead %s: %w", id, repository.ErrNotFound)
	}
	copied := *lead
	return &copied, nil
}

func (m *mockLeadRepo) GetAll(filters repository.LeadFilters) ([]models.Lead, error) {
	var out []models.Lead
	for _, lead := range m.leads {
		out = append(out, *lead)
	}
	return out, nil
}

func (m *mockLeadRepo) Create(lead *models.Lead) error {
	if lead.ID == uuid.Nil {
		lead.ID = uuid.New()
	}
	m.creates++
	copied := *lead
	m.leads[lead.ID] = &copied
	return nil
}

func (m *mockLeadRepo) Update(lead *models.Lead) error {
	if _, ok := m.leads[lead.ID]; !ok {
		return fmt.Errorf("lead %s: %w", lead.ID, repository.ErrNotFound)
	}
	m.updates++
	copied := *lead
	m.leads[lead.ID] = &copied
	return nil
}

func (m *mockLeadRepo) Delete(id uuid.UUID) error {
	delete(m.leads, id)
	return nil
}

type mockProspectRepo struct {
	prospects map[uuid.UUID]*models.Prospect
	updates   int
}

func newMockProspectRepo() *mockProspectRepo {
	return &mockProspectRepo{prospects: make(map[uuid.UUID]*models.Prospect)}
}

func (m *mockProspectRepo) GetByID(id uuid.UUID) (*models.Prospect, error) {
	p, ok := m.prospects[id]
	if !ok {
		return nil, fmt.Errorf("prospect %s: %w", id, repository.ErrNotFound)
	}
	copied := *p
	return &copied, nil
}

func (m *mockProspectRepo) GetAll(limit, offset int) ([]models.Prospect, error) {
	var out []models.Prospect
	for _, p := range m.prospects {
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockProspectRepo) Create(p *models.Prospect) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	copied := *p
	m.prospects[p.ID] = &copied
	return nil
}

func (m *mockProspectRepo) Update(p *models.Prospect) error {
	if _, ok := m.prospects[p.ID]; !ok {
		return fmt.Errorf("prospect %s: %w", p.ID, repository.ErrNotFound)
	}
	m.updates++
	copied := *p
	m.prospects[p.ID] = &copied
	return nil
}

type mockAccountRepo struct {
	accounts map[uuid.UUID]*models.Account
	creates  int
	updates  int
}

func newMockAccountRepo() *mockAccountRepo {
	return &mockAccountRepo{accounts: make(map[uuid.UUID]*models.Account)}
}

func (m *mockAccountRepo) GetByID(id uuid.UUID) (*models.Account, error) {
	a, ok := m.accounts[id]
	if !ok {
		return nil, fmt.Errorf("account %s: %w", id, repository.ErrNotFound)
	}
	copied := *a
	return &copied, nil
}

func (m *mockAccountRepo) GetAll(filters repository.AccountFilters) ([]models.Account, error) {
	var out []models.Account
	for _, a := range m.accounts {
		out = append(out, *a)
	}
	return out, nil
}

func (m *mockAccountRepo) Create(a *models.Account) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	m.creates++
	copied := *a
	m.accounts[a.ID] = &copied
	return nil
}

func (m *mockAccountRepo) Update(a *models.Account) error {
	if _, ok := m.accounts[a.ID]; !ok {
		return fmt.Errorf("account %s: %w", a.ID, repository.ErrNotFound)
	}
	m.updates++
	copied := *a
	m.accounts[a.ID] = &copied
	return nil
}

func (m *mockAccountRepo) Delete(id uuid.UUID) error {
	delete(m.accounts, id)
	return nil
}

type mockContactRepo struct {
	contacts map[uuid.UUID]*models.Contact
	creates  int
}

func newMockContactRepo() *mockContactRepo {
	return &mockContactRepo{contacts: make(map[uuid.UUID]*models.Contact)}
}

func (m *mockContactRepo) GetByID(id uuid.UUID) (*models.Contact, error) {
	c, ok := m.contacts[id]
	if !ok {
		return nil, fmt.Errorf("contact %s: %w", id, repository.ErrNotFound)
	}
	copied := *c
	return &copied, nil
}

func (m *mockContactRepo) GetByAccount(accountID uuid.UUID) ([]models.Contact, error) {
	var out []models.Contact
	for _, c := range m.contacts {
		if c.AccountID == accountID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *mockContactRepo) Create(c *models.Contact) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	m.creates++
	copied := *c
	m.contacts[c.ID] = &copied
	return nil
}

type mockOpportunityRepo struct {
	opps    map[uuid.UUID]*models.Opportunity
	creates int
	updates int
}

func newMockOpportunityRepo() *mockOpportunityRepo {
	return &mockOpportunityRepo{opps: make(map[uuid.UUID]*models.Opportunity)}
}

func (m *mockOpportunityRepo) GetByID(id uuid.UUID) (*models.Opportunity, error) {
	o, ok := m.opps[id]
	if !ok {
		return nil, fmt.Errorf("opportunity %s: %w", id, repository.ErrNotFound)
	}
	copied := *o
	return &copied, nil
}

func (m *mockOpportunityRepo) GetByAccount(accountID uuid.UUID) ([]models.Opportunity, error) {
	var out []models.Opportunity
	for _, o := range m.opps {
		if o.AccountID == accountID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (m *mockOpportunityRepo) Create(o *models.Opportunity) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	m.creates++
	copied := *o
	m.opps[o.ID] = &copied
	return nil
}

func (m *mockOpportunityRepo) Update(o *models.Opportunity) error {
	if _, ok := m.opps[o.ID]; !ok {
		return fmt.Errorf("opportunity %s: %w", o.ID, repository.ErrNotFound)
	}
	m.updates++
	copied := *o
	m.opps[o.ID] = &copied
	return nil
}

type mockCampaignRepo struct {
	campaigns map[uuid.UUID]*models.Campaign
}

func newMockCampaignRepo() *mockCampaignRepo {
	return &mockCampaignRepo{campaigns: make(map[uuid.UUID]*models.Campaign)}
}

func (m *mockCampaignRepo) GetByID(id uuid.UUID) (*models.Campaign, error) {
	c, ok := m.campaigns[id]
	if !ok {
		return nil, fmt.Errorf("campaign %s: %w", id, repository.ErrNotFound)
	}
	copied := *c
	return &copied, nil
}

func (m *mockCampaignRepo) GetByAccount(accountID uuid.UUID) ([]models.Campaign, error) {
	var out []models.Campaign
	for _, c := range m.campaigns {
		if c.AccountID != nil && *c.AccountID == accountID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *mockCampaignRepo) CountActiveByAccount(accountID uuid.UUID) (int, error) {
	count := 0
	for _, c := range m.campaigns {
		if c.AccountID != nil && *c.AccountID == accountID && c.Status == models.CampaignStatusActive {
			count++
		}
	}
	return count, nil
}

func (m *mockCampaignRepo) Create(c *models.Campaign) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	copied := *c
	m.campaigns[c.ID] = &copied
	return nil
}

func (m *mockCampaignRepo) Update(c *models.Campaign) error {
	copied := *c
	m.campaigns[c.ID] = &copied
	return nil
}

type mockInsightRepo struct {
	alerts       []models.RiskAlert
	recs         []models.Recommendation
	alertCreates int
	recCreates   int
}

func newMockInsightRepo() *mockInsightRepo {
	return &mockInsightRepo{}
}

func (m *mockInsightRepo) CreateAlert(alert *models.RiskAlert) error {
	if alert.ID == uuid.Nil {
		alert.ID = uuid.New()
	}
	m.alertCreates++
	m.alerts = append(m.alerts, *alert)
	return nil
}

func (m *mockInsightRepo) GetAlertsByAccount(accountID uuid.UUID, unresolvedOnly bool) ([]models.RiskAlert, error) {
	var out []models.RiskAlert
	for _, a := range m.alerts {
		if a.AccountID != accountID {
			continue
		}
		if unresolvedOnly && a.IsResolved {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (m *mockInsightRepo) ResolveAlert(id uuid.UUID) error {
	for i := range m.alerts {
		if m.alerts[i].ID == id {
			m.alerts[i].IsResolved = true
			return nil
		}
	}
	return fmt.Errorf("risk alert %s: %w", id, repository.ErrNotFound)
}

func (m *mockInsightRepo) CreateRecommendation(rec *models.Recommendation) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	m.recCreates++
	m.recs = append(m.recs, *rec)
	return nil
}

func (m *mockInsightRepo) GetRecommendationsByAccount(accountID uuid.UUID) ([]models.Recommendation, error) {
	var out []models.Recommendation
	for _, r := range m.recs {
		if r.AccountID == accountID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockInsightRepo) UpdateRecommendationStatus(id uuid.UUID, status models.RecommendationStatus) error {
	for i := range m.recs {
		if m.recs[i].ID == id {
			m.recs[i].Status = status
			return nil
		}
	}
	return fmt.Errorf("recommendation %s: %w", id, repository.ErrNotFound)
}

type mockApprovalRepo struct {
	approvals map[uuid.UUID]*models.Approval
	creates   int
	updates   int
}

func newMockApprovalRepo() *mockApprovalRepo {
	return &mockApprovalRepo{approvals: make(map[uuid.UUID]*models.Approval)}
}

func (m *mockApprovalRepo) GetByID(id uuid.UUID) (*models.Approval, error) {
	a, ok := m.approvals[id]
	if !ok {
		return nil, fmt.Errorf("approval %s: %w", id, repository.ErrNotFound)
	}
	copied := *a
	return &copied, nil
}

func (m *mockApprovalRepo) GetByOpportunity(opportunityID uuid.UUID) ([]models.Approval, error) {
	var out []models.Approval
	for _, a := range m.approvals {
		if a.OpportunityID == opportunityID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *mockApprovalRepo) HasPendingForOpportunity(opportunityID uuid.UUID) (bool, error) {
	for _, a := range m.approvals {
		if a.OpportunityID != opportunityID {
			continue
		}
		if a.Status == models.ApprovalStatusDraft || a.Status == models.ApprovalStatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockApprovalRepo) Create(a *models.Approval) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	m.creates++
	copied := *a
	m.approvals[a.ID] = &copied
	return nil
}

func (m *mockApprovalRepo) Update(a *models.Approval) error {
	if _, ok := m.approvals[a.ID]; !ok {
		return fmt.Errorf("approval %s: %w", a.ID, repository.ErrNotFound)
	}
	m.updates++
	copied := *a
	m.approvals[a.ID] = &copied
	return nil
}

type mockUserRepo struct {
	users map[uuid.UUID]*models.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uuid.UUID]*models.User)}
}

func (m *mockUserRepo) GetByID(id uuid.UUID) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, repository.ErrNotFound)
	}
	copied := *u
	return &copied, nil
}

func (m *mockUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", email, repository.ErrNotFound)
}

func (m *mockUserRepo) Create(u *models.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	copied := *u
	m.users[u.ID] = &copied
	return nil
}

// mockTxManager runs the function against the same repositories. It cannot
// roll back, so tests assert on create counters to verify that nothing was
// written before a failure.
type mockTxManager struct {
	repos *repository.Repositories
	calls int
}

func (m *mockTxManager) WithTransaction(fn func(repos *repository.Repositories) error) error {
	m.calls++
	return fn(m.repos)
}

// noopLogger discards all log output in tests
type noopLogger struct{}

func (noopLogger) Info(msg string, fields ...interface{})             {}
func (noopLogger) Error(msg string, err error, fields ...interface{}) {}
func (noopLogger) Warn(msg string, fields ...interface{})             {}
func (noopLogger) Debug(msg string, fields ...interface{})            {}
func (noopLogger) Fatal(msg string, err error, fields ...interface{}) {}

// testRepos bundles fresh mocks behind a Repositories value
type testRepos struct {
	lead        *mockLeadRepo
	prospect    *mockProspectRepo
	account     *mockAccountRepo
	contact     *mockContactRepo
	opportunity *mockOpportunityRepo
	campaign    *mockCampaignRepo
	insight     *mockInsightRepo
	approval    *mockApprovalRepo
	user        *mockUserRepo
	tx          *mockTxManager
	repos       *repository.Repositories
}

func newTestRepos() *testRepos {
	t := &testRepos{
		lead:        newMockLeadRepo(),
		prospect:    newMockProspectRepo(),
		account:     newMockAccountRepo(),
		contact:     newMockContactRepo(),
		opportunity: newMockOpportunityRepo(),
		campaign:    newMockCampaignRepo(),
		insight:     newMockInsightRepo(),
		approval:    newMockApprovalRepo(),
		user:        newMockUserRepo(),
	}
	t.repos = &repository.Repositories{
		Lead:        t.lead,
		Prospect:    t.prospect,
		Account:     t.account,
		Contact:     t.contact,
		Opportunity: t.opportunity,
		Campaign:    t.campaign,
		Insight:     t.insight,
		Approval:    t.approval,
		User:        t.user,
	}
	t.tx = &mockTxManager{repos: t.repos}
	t.repos.Tx = t.tx
	return t
}
