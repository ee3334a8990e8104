package campaign

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/dmitrymomot/outreach/pkg/id"
	"github.com/dmitrymomot/outreach/pkg/logger"
	"github.com/dmitrymomot/outreach/pkg/mailer"
	"github.com/dmitrymomot/outreach/pkg/recipient"
)

// Config is the static run configuration. The runner never reads the
// environment itself.
type Config struct {
	Identity      Identity
	Attachments   []string      `env:"ATTACHMENTS" envSeparator:","`
	ImageDir      string        `env:"IMAGE_DIR" envDefault:"./assets/selfie"`
	ImageTemplate string        `env:"IMAGE_TEMPLATE" envDefault:"template_shpe_2025_with_picture.html"`
	Throttle      time.Duration `env:"SEND_THROTTLE" envDefault:"2s"`
}

// RecipientStore loads and persists the recipients sheet.
type RecipientStore interface {
	Load(ctx context.Context) (*recipient.Snapshot, error)
	Save(ctx context.Context, snapshot *recipient.Snapshot) error
}

// TemplateLoader resolves a template filename.
type TemplateLoader interface {
	Load(name string) (*mailer.Template, error)
}

// Runner drives one mail-merge run over the recipients sheet.
type Runner struct {
	store        RecipientStore
	templates    TemplateLoader
	dialer       mailer.Dialer
	personalizer *Personalizer
	logger       *slog.Logger
	pause        func(ctx context.Context, d time.Duration) error
	config       Config
}

// New creates a Runner.
func New(store RecipientStore, templates TemplateLoader, dialer mailer.Dialer, cfg Config, opts ...Option) *Runner {
	r := &Runner{
		store:     store,
		templates: templates,
		dialer:    dialer,
		config:    cfg,
		personalizer: NewPersonalizer(cfg.Identity, ImageResolver{
			Dir:      cfg.ImageDir,
			Template: cfg.ImageTemplate,
		}),
		logger: logger.NewNope(),
		pause:  sleep,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// progress is the state accumulated by the loop. It lives outside the loop
// so cleanup sees what was sent even when the loop exits abnormally.
type progress struct {
	report    Report
	mutations []recipient.Mutation
}

// Run processes every row once.
//
// Loading the sheet and opening the session are fatal and happen before any
// send. The session is closed exactly once on every exit path, after which
// the sheet is saved once if at least one row was sent. Per-row problems are
// reported in the returned Report, not as an error.
func (r *Runner) Run(ctx context.Context) (report *Report, err error) {
	if _, ok := RunIDFrom(ctx); !ok {
		ctx = WithRunID(ctx, id.NewULID())
	}

	snapshot, err := r.store.Load(ctx)
	if err != nil {
		return nil, errors.Join(ErrLoadRecipients, err)
	}
	r.logger.InfoContext(ctx, "recipients loaded", slog.Int("rows", snapshot.Len()))

	session, err := r.dialer.Dial(ctx)
	if err != nil {
		return nil, errors.Join(ErrOpenSession, err)
	}
	r.logger.InfoContext(ctx, "mail session opened")

	p := &progress{}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			r.logger.WarnContext(ctx, "failed to close mail session", slog.String("error", cerr.Error()))
		} else {
			r.logger.InfoContext(ctx, "mail session closed")
		}
		if perr := r.persist(ctx, snapshot, p); perr != nil {
			err = errors.Join(err, perr)
		}
		report = &p.report
	}()

	attachments := r.attachments(ctx)
	for _, rec := range snapshot.Records() {
		if err := ctx.Err(); err != nil {
			return &p.report, err
		}

		outcome := r.process(ctx, session, rec, attachments)
		p.report.add(outcome)
		r.logOutcome(ctx, outcome)

		if outcome.Status != StatusSent {
			continue
		}
		p.mutations = append(p.mutations, recipient.Mutation{Row: rec.Row, SentStatus: recipient.StatusSent})
		if err := r.pause(ctx, r.config.Throttle); err != nil {
			return &p.report, err
		}
	}

	return &p.report, nil
}

// process walks one row through the eligibility rules and, when eligible,
// hands the rendered message to the session.
func (r *Runner) process(ctx context.Context, session mailer.Session, rec recipient.Record, attachments []mailer.Attachment) Outcome {
	out := Outcome{Row: rec.Row, Name: rec.Name, Email: rec.Email}

	if rec.AlreadySent() {
		out.Status = StatusSkippedAlreadySent
		return out
	}
	if rec.TemplateFile == "" {
		out.Status = StatusSkippedNoTemplate
		return out
	}

	tmpl, err := r.templates.Load(rec.TemplateFile)
	if err != nil {
		out.Status, out.Err = StatusSkippedLoadFailed, err
		return out
	}

	msg, err := r.personalizer.Personalize(tmpl, rec)
	if err != nil {
		out.Status, out.Err = StatusSkippedBindFailed, err
		return out
	}

	if err := session.Send(ctx, r.email(rec, msg, attachments)); err != nil {
		out.Status, out.Err = StatusFailed, err
		return out
	}

	out.Status = StatusSent
	return out
}

func (r *Runner) email(rec recipient.Record, msg *Message, attachments []mailer.Attachment) *mailer.Email {
	all := make([]mailer.Attachment, 0, len(attachments)+1)
	if msg.ImagePath != "" {
		all = append(all, mailer.InlineAttachment(msg.ImagePath, InlineImageContentID))
	}
	all = append(all, attachments...)

	return &mailer.Email{
		From:        mailer.Recipient(r.config.Identity.Name, r.config.Identity.Email),
		To:          []string{rec.Email},
		Subject:     msg.Subject,
		HTML:        msg.HTML,
		Text:        msg.Text,
		Attachments: all,
	}
}

// attachments resolves the configured files once per run. Missing files are
// left out with a warning rather than failing every row.
func (r *Runner) attachments(ctx context.Context) []mailer.Attachment {
	out := make([]mailer.Attachment, 0, len(r.config.Attachments))
	for _, path := range r.config.Attachments {
		if path == "" {
			continue
		}
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			r.logger.WarnContext(ctx, "attachment not found, skipping", slog.String("path", path))
			continue
		}
		out = append(out, mailer.FileAttachment(path))
	}
	return out
}

// persist applies the accumulated mutations and saves the sheet once.
// Nothing is written when no row was sent.
func (r *Runner) persist(ctx context.Context, snapshot *recipient.Snapshot, p *progress) error {
	if len(p.mutations) == 0 {
		r.logger.InfoContext(ctx, "no new emails were sent, recipients sheet left unmodified",
			slog.Int("skipped", p.report.Skipped),
			slog.Int("failed", p.report.Failed),
		)
		return nil
	}

	updated, err := snapshot.Apply(p.mutations)
	if err != nil {
		return errors.Join(ErrPersist, err)
	}
	// Sent rows must be recorded even when the run was cancelled.
	if err := r.store.Save(context.WithoutCancel(ctx), updated); err != nil {
		return errors.Join(ErrPersist, err)
	}
	p.report.Persisted = true

	r.logger.InfoContext(ctx, "recipients sheet updated",
		slog.Int("sent", p.report.Sent),
		slog.Int("skipped", p.report.Skipped),
		slog.Int("failed", p.report.Failed),
	)
	return nil
}

func (r *Runner) logOutcome(ctx context.Context, o Outcome) {
	attrs := []any{
		slog.Int("row", o.Row),
		slog.String("name", o.Name),
		slog.String("email", o.Email),
		slog.String("status", string(o.Status)),
	}
	if o.Err != nil {
		attrs = append(attrs, slog.String("error", o.Err.Error()))
	}

	switch o.Status {
	case StatusSent:
		r.logger.InfoContext(ctx, "email sent", attrs...)
	case StatusFailed:
		r.logger.ErrorContext(ctx, "email failed", attrs...)
	case StatusSkippedLoadFailed, StatusSkippedBindFailed:
		r.logger.WarnContext(ctx, "email skipped", attrs...)
	default:
		r.logger.InfoContext(ctx, "email skipped", attrs...)
	}
}
