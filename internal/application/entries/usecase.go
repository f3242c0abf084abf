package entries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-pro/internal/domain"
	"github.com/jhoicas/almacen-pro/internal/domain/entity"
	"github.com/jhoicas/almacen-pro/internal/domain/repository"
	"github.com/jhoicas/almacen-pro/pkg/logger"
)

// RegisterInput datos para registrar una entrada con sus líneas.
type RegisterInput struct {
	Date         time.Time
	Origin       string
	AuthorizedBy string
	ReceivedBy   string
	// Justification obligatoria cuando alguna línea trae cantidad negativa
	// (corrección/ajuste).
	Justification string
	Lines         []LineInput
}

// LineInput línea de entrada; la cantidad lleva signo.
type LineInput struct {
	ItemCode string
	Quantity decimal.Decimal
}

// RegisterUseCase persiste entradas respetando el orden referencial del
// libro: la cabecera se escribe antes que sus líneas, cada una en su propia
// llamada. Las entradas son inmutables una vez creadas.
type RegisterUseCase struct {
	entryRepo repository.EntryRepository
	itemRepo  repository.ItemRepository
	log       *logger.Logger
}

// NewRegisterUseCase construye el caso de uso.
func NewRegisterUseCase(entryRepo repository.EntryRepository, itemRepo repository.ItemRepository, log *logger.Logger) *RegisterUseCase {
	return &RegisterUseCase{entryRepo: entryRepo, itemRepo: itemRepo, log: log}
}

// Register valida y persiste la entrada. Devuelve el id de la cabecera.
func (uc *RegisterUseCase) Register(ctx context.Context, in RegisterInput) (string, error) {
	now := time.Now()
	date := in.Date
	if date.IsZero() {
		date = now
	}
	entry := &entity.Entry{
		ID:            uuid.New().String(),
		Date:          date,
		Origin:        in.Origin,
		AuthorizedBy:  in.AuthorizedBy,
		ReceivedBy:    in.ReceivedBy,
		Justification: in.Justification,
		CreatedAt:     now,
	}
	lines := make([]entity.EntryLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, entity.EntryLine{
			EntryID:  entry.ID,
			ItemCode: l.ItemCode,
			Quantity: l.Quantity,
		})
	}
	if err := entry.Validate(lines); err != nil {
		return "", err
	}

	// Los artículos deben existir en el maestro antes de asentar movimiento.
	for _, l := range lines {
		item, err := uc.itemRepo.GetByCode(ctx, l.ItemCode)
		if err != nil {
			return "", err
		}
		if item == nil {
			return "", domain.ErrNotFound
		}
	}

	if err := uc.entryRepo.InsertHeader(ctx, entry); err != nil {
		return "", &domain.PersistenceError{Step: "create_entry_header", Err: err}
	}
	if err := uc.entryRepo.InsertLines(ctx, lines); err != nil {
		// Sin transacción entre llamadas: la cabecera queda asentada sin
		// líneas y el llamador debe reenviar la operación.
		uc.log.Error().Err(err).Str("entry_id", entry.ID).Msg("líneas de entrada no escritas; cabecera sin líneas")
		return "", &domain.PersistenceError{Step: "create_entry_lines", Err: err}
	}
	uc.log.Info().Str("entry_id", entry.ID).Int("lines", len(lines)).Msg("entrada registrada")
	return entry.ID, nil
}
