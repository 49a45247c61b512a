package seed

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/agendap83/rosterboard/internal/domain"
	"github.com/agendap83/rosterboard/internal/repository"
)

// The development roster mirrors the platform crew structure: technicians
// under supervisors, supervisors under coordinators, plus the shore staff.
var persons = []domain.Person{
	{Key: "FRCF", Name: "Francisco Cunha Filho", EmployeeNo: "100234", Role: "SUEIN", Active: true},
	{Key: "NVBN", Name: "Nivaldo Bonfim Neto", EmployeeNo: "100871", Role: "SUEIN", Active: true},
	{Key: "RWEU", Name: "Rodrigo Weber", EmployeeNo: "101442", Role: "SUEIN", Active: true},
	{Key: "WVY4", Name: "Wellington Vieira", EmployeeNo: "101583", Role: "SUEIN", Active: true},
	{Key: "YT3I", Name: "Yuri Teixeira", EmployeeNo: "101790", Role: "SUEIN", Active: true},
	{Key: "MSLV", Name: "Marcos Silva", EmployeeNo: "102004", Role: "SUMEC", Active: true},
	{Key: "APRC", Name: "Ana Paula Rocha", EmployeeNo: "102115", Role: "SUMEC", Active: true},
	{Key: "JCST", Name: "Julio Costa", EmployeeNo: "102377", Role: "SUPROD", Active: true},
	{Key: "LFMD", Name: "Luis Fernando Medeiros", EmployeeNo: "102490", Role: "SUEMB", Active: true},
	{Key: "CBAR", Name: "Carla Barbosa", EmployeeNo: "103018", Role: "TMA", Active: true},
	{Key: "DMTS", Name: "Diego Matos", EmployeeNo: "103126", Role: "TMA", Active: true},
	{Key: "EPRG", Name: "Eduardo Peregrino", EmployeeNo: "103244", Role: "TMI", Active: true},
	{Key: "FGLM", Name: "Fabiana Guimaraes", EmployeeNo: "103391", Role: "TME", Active: true},
	{Key: "GSNT", Name: "Gabriel Santana", EmployeeNo: "103472", Role: "TMM", Active: true},
	{Key: "HRRR", Name: "Henrique Ribeiro", EmployeeNo: "103588", Role: "TO_P", Active: true},
	{Key: "ILMA", Name: "Ivana Lima", EmployeeNo: "103675", Role: "TO_E", Active: true},
	{Key: "JPCV", Name: "Joao Pedro Cavalcanti", EmployeeNo: "103789", Role: "TLT", Active: true},
	{Key: "KDSA", Name: "Karina de Sa", EmployeeNo: "103854", Role: "COMAN", Active: true},
	{Key: "LMOR", Name: "Leonardo Moraes", EmployeeNo: "103902", Role: "COEMB", Active: true},
	{Key: "MNGR", Name: "Mariana Negreiros", EmployeeNo: "104033", Role: "COPROD", Active: true},
	{Key: "NETO", Name: "Norberto Esteves", EmployeeNo: "104121", Role: "ENG", Active: true},
	{Key: "OLVR", Name: "Otavio Oliveira", EmployeeNo: "104250", Role: "ADM", Active: true},
	{Key: "PGEP", Name: "Patricia Gepp", EmployeeNo: "104388", Role: "GEPLAT", Active: true},
	{Key: "QGOP", Name: "Quintino Gomes", EmployeeNo: "104419", Role: "GEOP", Active: false},
}

var legendCodes = []domain.LegendCode{
	{Code: "EM", Description: "Embarcado", Active: true},
	{Code: "B", Description: "Base", Active: true},
	{Code: "HO", Description: "Home office", Active: true},
	{Code: "TR", Description: "Treinamento", Active: true},
	{Code: "EVT", Description: "Evento / missão", Active: true},
	{Code: "F", Description: "Férias", Active: true},
	{Code: "O", Description: "Folga", Active: true},
	{Code: "A", Description: "Afastado", Active: true},
	{Code: "FS", Description: "Final de semana / feriado", Active: true},
	{Code: "L", Description: "Licença", Active: true},
	{Code: "NB", Description: "Não mobilizado", Active: true},
	{Code: "PT", Description: "Em transferência", Active: true},
	{Code: "IN", Description: "Interino", Active: false},
}

// day codes the random scheduler picks from (weekdays only; weekends get FS)
var weekdayCodes = []string{"EM", "EM", "EM", "B", "B", "HO", "TR", "F", "O"}

func SeedPersons(repo *repository.Repository) error {
	for i := range persons {
		if err := repo.CreatePerson(&persons[i]); err != nil {
			return fmt.Errorf("person %s: %w", persons[i].Key, err)
		}
	}
	slog.Info("seeded persons", "count", len(persons))
	return nil
}

func SeedLegend(repo *repository.Repository) error {
	for i := range legendCodes {
		if err := repo.CreateLegendCode(&legendCodes[i]); err != nil {
			return fmt.Errorf("legend code %s: %w", legendCodes[i].Code, err)
		}
	}
	slog.Info("seeded legend codes", "count", len(legendCodes))
	return nil
}

func SeedCalendar(repo *repository.Repository, rng domain.DateRange) error {
	days := rng.Days()
	for _, day := range days {
		if err := repo.CreateCalendarDay(day); err != nil {
			return fmt.Errorf("calendar day %s: %w", day, err)
		}
	}
	slog.Info("seeded calendar days", "count", len(days))
	return nil
}

// SeedScheduleCells writes a random but plausible schedule: weekends marked
// FS, roughly two thirds of the weekdays coded.
func SeedScheduleCells(repo *repository.Repository, rng domain.DateRange, source string) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	days := rng.Days()

	items := make([]domain.ScheduleCell, 0, len(persons)*len(days))
	for _, p := range persons {
		for _, day := range days {
			code := ""
			if !domain.IsBusinessDay(day) {
				code = "FS"
			} else if r.Intn(3) != 0 {
				code = weekdayCodes[r.Intn(len(weekdayCodes))]
			}
			if code == "" {
				continue
			}
			items = append(items, domain.ScheduleCell{
				PersonKey: p.Key,
				Date:      day,
				Code:      code,
				Source:    source,
			})
		}
	}

	res, err := repo.SaveScheduleCells(items)
	if err != nil {
		return err
	}
	slog.Info("seeded schedule cells", "upserted", res.Upserted)
	return nil
}
