// ABOUTME: App shell controller for theme, onboarding, the activation checklist and workspace actions
// ABOUTME: Bundles the screen controllers that share one store and toast service

package controllers

import (
	"fmt"
	"sync"

	"github.com/harperreed/revenueos/models"
	"github.com/harperreed/revenueos/notify"
	"github.com/harperreed/revenueos/store"
	"github.com/harperreed/revenueos/team"
	"github.com/harperreed/revenueos/views"
)

// OnboardingSteps is the length of the first-run walkthrough.
const OnboardingSteps = 4

type AppController struct {
	store  *store.Store
	toasts *notify.Service
	prefs  *store.Prefs
	roster *team.Roster

	Pipeline     *PipelineController
	Leads        *LeadsController
	Inbox        *InboxController
	Proposals    *ProposalsController
	Contracts    *ContractsController
	Dashboard    *DashboardController
	Integrations *IntegrationsController

	mu        sync.Mutex
	step      int
	checklist views.Checklist
}

// NewApp wires every screen controller. roster may be nil when the team
// screen is not used.
func NewApp(s *store.Store, toasts *notify.Service, roster *team.Roster) *AppController {
	return &AppController{
		store:        s,
		toasts:       toasts,
		prefs:        s.Prefs(),
		roster:       roster,
		Pipeline:     NewPipelineController(s, toasts),
		Leads:        NewLeadsController(s, toasts),
		Inbox:        NewInboxController(s),
		Proposals:    NewProposalsController(s, toasts),
		Contracts:    NewContractsController(s, toasts),
		Dashboard:    NewDashboardController(s),
		Integrations: NewIntegrationsController(s, toasts),
		step:         1,
		checklist:    views.DefaultChecklist(),
	}
}

func (a *AppController) Toasts() *notify.Service { return a.toasts }

func (a *AppController) Store() *store.Store { return a.store }

// Roster is nil when the app was built without the team screen.
func (a *AppController) Roster() *team.Roster { return a.roster }

func (a *AppController) Theme() store.Theme {
	return a.prefs.Theme()
}

func (a *AppController) ToggleTheme() (store.Theme, error) {
	return a.prefs.ToggleTheme()
}

// Onboarding

// ShowOnboarding is true until onboarding has been completed once.
func (a *AppController) ShowOnboarding() bool {
	return !a.prefs.Onboarded()
}

func (a *AppController) OnboardingStep() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.step
}

func (a *AppController) NextOnboardingStep() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.step < OnboardingSteps {
		a.step++
	}
	return a.step
}

// CompleteOnboarding records the flag and loads the demo data.
func (a *AppController) CompleteOnboarding() error {
	if err := a.prefs.SetOnboarded(); err != nil {
		return err
	}
	if err := a.store.Seed(); err != nil {
		return fmt.Errorf("failed to seed workspace: %w", err)
	}
	return nil
}

// Checklist

func (a *AppController) Checklist() views.Checklist {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.checklist
}

func (a *AppController) CompleteTask(id string) views.Checklist {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.checklist = a.checklist.Complete(id)
	return a.checklist
}

func (a *AppController) DismissChecklist() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.checklist = a.checklist.Dismiss()
}

// Today projects the home screen with the current checklist.
func (a *AppController) Today() views.Today {
	return views.BuildToday(a.store.Get(), a.Checklist(), a.store.Now())
}

// Workspace

// Status summarizes where the workspace came from and what it holds.
type Status struct {
	store.LoadReport
	Leads       int         `json:"leads"`
	Deals       int         `json:"deals"`
	Proposals   int         `json:"proposals"`
	Contracts   int         `json:"contracts"`
	ActiveFlows int         `json:"activeFlows"`
	MonthlyGoal float64     `json:"monthlyGoal"`
	Theme       store.Theme `json:"theme"`
	Onboarded   bool        `json:"onboarded"`
}

func (a *AppController) Status() Status {
	st := a.store.Get()
	return Status{
		LoadReport:  a.store.LoadReport(),
		Leads:       len(st.Leads),
		Deals:       len(st.Deals),
		Proposals:   len(st.Proposals),
		Contracts:   len(st.Contracts),
		ActiveFlows: len(st.ActiveFlowIDs),
		MonthlyGoal: st.MonthlyGoal,
		Theme:       a.prefs.Theme(),
		Onboarded:   a.prefs.Onboarded(),
	}
}

func (a *AppController) SeedData() error {
	if err := a.store.Seed(); err != nil {
		return fmt.Errorf("failed to seed workspace: %w", err)
	}
	a.toasts.Show(notify.Success, "Demo data has been loaded!")
	return nil
}

// ResetWorkspace restores the default dataset and roster. It refuses to run
// unless confirm is set.
func (a *AppController) ResetWorkspace(confirm bool) error {
	if !confirm {
		return ErrConfirmationRequired
	}
	if err := a.store.Reset(); err != nil {
		return fmt.Errorf("failed to reset workspace: %w", err)
	}
	if a.roster != nil {
		if err := a.roster.Reset(models.Seed(a.store.Now()).TeamPerformance, a.store.Now()); err != nil {
			return fmt.Errorf("failed to reset team: %w", err)
		}
	}
	a.toasts.Show(notify.Success, "Workspace has been reset.")
	return nil
}
