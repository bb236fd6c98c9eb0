package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/lib/pq"
	"github.com/spectix11/ai-sdr/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = `
	id, email, fullname, job_title, company_name, industry, company_size,
	company_website, linkedin_url, username, stage, lead_source, campaign_id,
	day_1_sent, day_1_sent_at, day_1_subject, day_1_body,
	day_2_sent, day_2_sent_at, day_2_subject, day_2_body,
	day_3_sent, day_3_sent_at, day_3_subject, day_3_body,
	day_4_sent, day_4_sent_at, day_4_subject, day_4_body,
	replied, booked, booked_at, created_at, last_updated_at, days
`

// FindAll busca o snapshot de uma tela. O predicado roda no servidor; a
// ordenação padrão é last_updated_at DESC com nulos por último.
func (r *LeadRepository) FindAll(ctx context.Context, view entity.ViewName) ([]entity.Lead, error) {
	where := ""
	switch view {
	case entity.ViewActive:
		where = `WHERE stage NOT IN ('imported', 'done') AND replied = false AND booked = false`
	case entity.ViewReplies:
		where = `WHERE replied = true AND booked = false`
	case entity.ViewBooked:
		where = `WHERE booked = true`
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM leads_pipeline
		%s
		ORDER BY last_updated_at DESC NULLS LAST
	`, leadColumns, where)

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		log.Printf("Erro crítico no banco: %v", err)
		return nil, err
	}
	defer rows.Close()

	var leads []entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, *lead)
	}
	return leads, rows.Err()
}

// updatableColumns é o whitelist de campos que o dashboard pode mutar.
// last_updated_at fica fora: o repositório sempre refresca sozinho.
var updatableColumns = map[string]bool{
	"email":           true,
	"fullname":        true,
	"job_title":       true,
	"company_name":    true,
	"industry":        true,
	"company_size":    true,
	"company_website": true,
	"linkedin_url":    true,
	"username":        true,
	"stage":           true,
	"lead_source":     true,
	"campaign_id":     true,
	"replied":         true,
	"booked":          true,
	"booked_at":       true,
	"days":            true,
}

// UpdateFields aplica um update parcial em uma única mutação atômica de
// linha. Campos fora do whitelist são rejeitados antes de tocar no banco.
func (r *LeadRepository) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return errors.New("no fields to update")
	}

	setClauses := make([]string, 0, len(fields)+1)
	args := make([]any, 0, len(fields)+1)

	i := 1
	for column, value := range fields {
		if !updatableColumns[column] {
			return fmt.Errorf("column %q is not updatable", column)
		}
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, i))
		args = append(args, value)
		i++
	}
	setClauses = append(setClauses, "last_updated_at = NOW()")

	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE leads_pipeline SET %s WHERE id = $%d",
		strings.Join(setClauses, ", "), i,
	)

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return entity.ErrEmailAlreadyExists
		}
		log.Printf("Erro crítico no banco: %v", err)
		return err
	}

	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return entity.ErrLeadNotFound
	}
	return nil
}

// Upsert é o caminho de ingestão: leads gerados chegam pelo worker e entram
// com stage=imported, days=1. Conflito de email atualiza só o perfil.
func (r *LeadRepository) Upsert(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads_pipeline (
			id, email, fullname, job_title, company_name, industry, company_size,
			company_website, linkedin_url, username, stage, lead_source, campaign_id,
			created_at, last_updated_at, days
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 'imported', $11, $12, NOW(), NOW(), 1)
		ON CONFLICT (email)
		DO UPDATE SET
			fullname        = COALESCE(NULLIF(EXCLUDED.fullname, ''), leads_pipeline.fullname),
			job_title       = COALESCE(NULLIF(EXCLUDED.job_title, ''), leads_pipeline.job_title),
			company_name    = COALESCE(NULLIF(EXCLUDED.company_name, ''), leads_pipeline.company_name),
			industry        = COALESCE(NULLIF(EXCLUDED.industry, ''), leads_pipeline.industry),
			company_size    = COALESCE(NULLIF(EXCLUDED.company_size, ''), leads_pipeline.company_size),
			company_website = COALESCE(NULLIF(EXCLUDED.company_website, ''), leads_pipeline.company_website),
			linkedin_url    = COALESCE(NULLIF(EXCLUDED.linkedin_url, ''), leads_pipeline.linkedin_url),
			last_updated_at = NOW()
		RETURNING id, stage, created_at, last_updated_at, days
	`

	err := r.DB.QueryRowContext(ctx, query,
		lead.ID,
		lead.Email,
		lead.FullName,
		lead.JobTitle,
		lead.CompanyName,
		lead.Industry,
		lead.CompanySize,
		lead.CompanyWebsite,
		lead.LinkedinURL,
		lead.Username,
		lead.LeadSource,
		lead.CampaignID,
	).Scan(&lead.ID, &lead.Stage, &lead.CreatedAt, &lead.LastUpdatedAt, &lead.Days)

	return err
}

// IncrementPipelineAge bumps the days counter for leads still being worked
// (not booked, not done) that were last bumped more than 24h ago.
func (r *LeadRepository) IncrementPipelineAge(ctx context.Context) (int64, error) {
	query := `
		UPDATE leads_pipeline
		SET days = days + 1
		WHERE booked = false
		  AND stage NOT IN ('done')
		  AND created_at < NOW() - (days * INTERVAL '1 day')
	`

	result, err := r.DB.ExecContext(ctx, query)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var l entity.Lead
	var (
		fullname, jobTitle, companyName, industry, companySize sql.NullString
		companyWebsite, linkedinURL, username                  sql.NullString
		leadSource, campaignID                                 sql.NullString
		d1at, d2at, d3at, d4at, bookedAt, lastUpdatedAt        sql.NullTime
		d1sub, d1body, d2sub, d2body                           sql.NullString
		d3sub, d3body, d4sub, d4body                           sql.NullString
	)

	err := row.Scan(
		&l.ID, &l.Email, &fullname, &jobTitle, &companyName, &industry, &companySize,
		&companyWebsite, &linkedinURL, &username, &l.Stage, &leadSource, &campaignID,
		&l.Day1Sent, &d1at, &d1sub, &d1body,
		&l.Day2Sent, &d2at, &d2sub, &d2body,
		&l.Day3Sent, &d3at, &d3sub, &d3body,
		&l.Day4Sent, &d4at, &d4sub, &d4body,
		&l.Replied, &l.Booked, &bookedAt, &l.CreatedAt, &lastUpdatedAt, &l.Days,
	)
	if err != nil {
		return nil, err
	}

	l.FullName = fullname.String
	l.JobTitle = jobTitle.String
	l.CompanyName = companyName.String
	l.Industry = industry.String
	l.CompanySize = companySize.String
	l.CompanyWebsite = companyWebsite.String
	l.LinkedinURL = linkedinURL.String
	l.Username = username.String
	l.LeadSource = leadSource.String
	l.CampaignID = campaignID.String
	l.Day1Subject, l.Day1Body = d1sub.String, d1body.String
	l.Day2Subject, l.Day2Body = d2sub.String, d2body.String
	l.Day3Subject, l.Day3Body = d3sub.String, d3body.String
	l.Day4Subject, l.Day4Body = d4sub.String, d4body.String

	if d1at.Valid {
		l.Day1SentAt = &d1at.Time
	}
	if d2at.Valid {
		l.Day2SentAt = &d2at.Time
	}
	if d3at.Valid {
		l.Day3SentAt = &d3at.Time
	}
	if d4at.Valid {
		l.Day4SentAt = &d4at.Time
	}
	if bookedAt.Valid {
		l.BookedAt = &bookedAt.Time
	}
	if lastUpdatedAt.Valid {
		l.LastUpdatedAt = &lastUpdatedAt.Time
	}

	return &l, nil
}
