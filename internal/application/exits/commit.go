package exits

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-pro/internal/domain"
	"github.com/jhoicas/almacen-pro/internal/domain/entity"
	"github.com/jhoicas/almacen-pro/internal/domain/repository"
	"github.com/jhoicas/almacen-pro/internal/observability"
	"github.com/jhoicas/almacen-pro/pkg/logger"
)

// State estado del flujo de commit. La transición es lineal y sin retornos:
// DRAFT → (REQUEST_CREATED) → HEADER_CREATED → SIDE_EFFECTS_RUN →
// LINES_WRITTEN → FINALIZED. Solo FINALIZED es éxito observable desde afuera.
type State string

const (
	StateDraft          State = "DRAFT"
	StateRequestCreated State = "REQUEST_CREATED"
	StateHeaderCreated  State = "HEADER_CREATED"
	StateSideEffectsRun State = "SIDE_EFFECTS_RUN"
	StateLinesWritten   State = "LINES_WRITTEN"
	StateFinalized      State = "FINALIZED"
)

// Pasos del commit, para atribuir cada falla de persistencia al paso exacto.
const (
	StepResolveType   = "resolve_request_type"
	StepCreateRequest = "create_request"
	StepCreateHeader  = "create_header"
	StepStockCheck    = "stock_check"
	StepInsertLines   = "insert_lines"
	StepFinalize      = "finalize"
)

// SideEffect efecto colateral opcional ligado a la transacción (ej. registros
// auxiliares). Sus fallas se registran pero no abortan el commit: canal
// best-effort deliberado, sin rollback.
type SideEffect func(ctx context.Context, exit *entity.Exit) error

// CommitInput datos para confirmar una salida.
type CommitInput struct {
	Date         time.Time
	AuthorizedBy string
	RetrievedBy  string
	Comments     string
	// RequestType código del tipo de solicitud a vincular; vacío = sin solicitud.
	// Se resuelve por código exacto y, si no, por subcadena en la descripción.
	RequestType        string
	RequestDescription string
	Requester          string
	Location           string
	Lines              []DraftLine
}

// CommitResult resultado de un commit exitoso.
type CommitResult struct {
	ExitID    string
	RequestID string
	State     State
}

// CommitUseCase persiste una nueva salida contra el libro. Cada paso es una
// llamada de red independiente: no hay transacción entre pasos, una falla
// después de crear la cabecera la deja huérfana en finalized=false y el
// llamador debe reenviar la operación completa. No se reintenta nada
// automáticamente.
//
// Dos commits concurrentes del mismo artículo pueden pasar ambos la
// re-verificación de stock antes de escribir líneas: el sobregiro es una
// limitación conocida y aceptada, no se "arregla" aquí con bloqueos.
type CommitUseCase struct {
	exitRepo    repository.ExitRepository
	requestRepo repository.RequestRepository
	itemRepo    repository.ItemRepository
	sideEffects []SideEffect
	log         *logger.Logger
	metrics     *observability.Metrics
}

// NewCommitUseCase construye el caso de uso.
func NewCommitUseCase(
	exitRepo repository.ExitRepository,
	requestRepo repository.RequestRepository,
	itemRepo repository.ItemRepository,
	sideEffects []SideEffect,
	log *logger.Logger,
	metrics *observability.Metrics,
) *CommitUseCase {
	return &CommitUseCase{
		exitRepo:    exitRepo,
		requestRepo: requestRepo,
		itemRepo:    itemRepo,
		sideEffects: sideEffects,
		log:         log,
		metrics:     metrics,
	}
}

// Commit ejecuta el flujo completo. Los errores de validación, resolución y
// conflicto de stock abortan sin escrituras posteriores; los de persistencia
// llevan el paso que falló.
func (uc *CommitUseCase) Commit(ctx context.Context, in CommitInput) (*CommitResult, error) {
	state := StateDraft

	// Paso 1: validación local, sin escrituras de red.
	lines, err := uc.validate(in)
	if err != nil {
		uc.metrics.ExitCommit(observability.CommitResultValidation)
		return nil, err
	}

	var reqType *entity.RequestType
	if strings.TrimSpace(in.RequestType) != "" {
		reqType, err = uc.resolveRequestType(ctx, in.RequestType)
		if err != nil {
			if _, ok := err.(*domain.ResolutionError); ok {
				uc.metrics.ExitCommit(observability.CommitResultResolution)
			} else {
				uc.metrics.ExitCommit(observability.CommitResultPersistence)
			}
			return nil, err
		}
	}

	now := time.Now()
	date := in.Date
	if date.IsZero() {
		date = now
	}

	// Paso 2: crear la solicitud vinculada. Una falla aquí aborta antes de
	// que exista fila alguna de la salida.
	requestID := ""
	if reqType != nil {
		req := &entity.Request{
			ID:          uuid.New().String(),
			TypeCode:    reqType.Code,
			Description: in.RequestDescription,
			Requester:   in.Requester,
			Location:    in.Location,
			CreatedAt:   now,
		}
		if err := uc.requestRepo.Insert(ctx, req); err != nil {
			return nil, uc.persistenceFailure(StepCreateRequest, state, "", err)
		}
		requestID = req.ID
		state = StateRequestCreated
	}

	// Paso 3: cabecera con finalized=false. Desde aquí y hasta finalizar, la
	// fila existe pero debe tratarse como invisible río abajo.
	exit := &entity.Exit{
		ID:           uuid.New().String(),
		Date:         date,
		AuthorizedBy: in.AuthorizedBy,
		RetrievedBy:  in.RetrievedBy,
		RequestID:    requestID,
		Comments:     in.Comments,
		Finalized:    false,
		CreatedAt:    now,
	}
	if err := uc.exitRepo.InsertHeader(ctx, exit); err != nil {
		return nil, uc.persistenceFailure(StepCreateHeader, state, "", err)
	}
	state = StateHeaderCreated

	// Paso 4: efectos colaterales best-effort. Se registran las fallas y se sigue.
	for _, effect := range uc.sideEffects {
		if err := effect(ctx, exit); err != nil {
			uc.log.Warn().Err(err).Str("exit_id", exit.ID).Msg("efecto colateral falló; el commit continúa")
		}
	}
	state = StateSideEffectsRun

	// Paso 5: re-verificación autoritativa de stock contra el almacén. Si algo
	// ya no alcanza, se aborta sin escribir líneas: la cabecera queda huérfana.
	for _, l := range lines {
		available, err := uc.itemRepo.Available(ctx, l.ItemCode)
		if err != nil {
			return nil, uc.persistenceFailure(StepStockCheck, state, exit.ID, err)
		}
		if l.Quantity.GreaterThan(available) {
			uc.metrics.ExitCommit(observability.CommitResultStockConflict)
			uc.log.Error().
				Str("exit_id", exit.ID).
				Str("item", l.ItemCode).
				Msg("conflicto de stock; cabecera huérfana en finalized=false")
			return nil, &domain.StockConflictError{
				ItemCode:  l.ItemCode,
				Requested: l.Quantity,
				Available: available,
			}
		}
	}

	// Paso 6: insertar las líneas con su foto de precio.
	exitLines := make([]entity.ExitLine, 0, len(lines))
	for _, l := range lines {
		exitLines = append(exitLines, entity.ExitLine{
			ExitID:    exit.ID,
			ItemCode:  l.ItemCode,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}
	if err := uc.exitRepo.InsertLines(ctx, exitLines); err != nil {
		return nil, uc.persistenceFailure(StepInsertLines, state, exit.ID, err)
	}
	state = StateLinesWritten

	// Paso 7: finalized=true, la única señal autoritativa de commit.
	if err := exit.Finalize(); err != nil {
		return nil, err
	}
	if err := uc.exitRepo.UpdateFinalized(ctx, exit.ID); err != nil {
		return nil, uc.persistenceFailure(StepFinalize, state, exit.ID, err)
	}
	state = StateFinalized

	uc.metrics.ExitCommit(observability.CommitResultSuccess)
	uc.log.Info().
		Str("exit_id", exit.ID).
		Str("request_id", requestID).
		Int("lines", len(exitLines)).
		Msg("salida finalizada")
	return &CommitResult{ExitID: exit.ID, RequestID: requestID, State: state}, nil
}

// validate aplica las precondiciones locales: cabecera completa, al menos una
// línea con código y cantidad positiva, sin códigos repetidos, y ninguna
// cantidad por encima del disponible cacheado (chequeo consultivo).
func (uc *CommitUseCase) validate(in CommitInput) ([]DraftLine, error) {
	if strings.TrimSpace(in.AuthorizedBy) == "" || strings.TrimSpace(in.RetrievedBy) == "" {
		return nil, &domain.ValidationError{Reason: "autoriza y retira son obligatorios"}
	}
	valid := make([]DraftLine, 0, len(in.Lines))
	seen := make(map[string]bool, len(in.Lines))
	for _, l := range in.Lines {
		code := strings.TrimSpace(l.ItemCode)
		if code == "" || !l.Quantity.IsPositive() {
			continue
		}
		if seen[code] {
			return nil, &domain.ValidationError{Reason: "el artículo " + code + " aparece dos veces"}
		}
		seen[code] = true
		if l.Quantity.GreaterThan(l.Available) {
			return nil, &domain.ValidationError{
				Reason: "la cantidad de " + code + " excede el disponible cacheado",
			}
		}
		l.ItemCode = code
		valid = append(valid, l)
	}
	if len(valid) == 0 {
		return nil, &domain.ValidationError{Reason: "no hay líneas con código y cantidad positiva"}
	}
	return valid, nil
}

// resolveRequestType resuelve el tipo por código exacto; si no hay, por
// subcadena en la descripción. Sin coincidencia devuelve ResolutionError.
func (uc *CommitUseCase) resolveRequestType(ctx context.Context, code string) (*entity.RequestType, error) {
	types, err := uc.requestRepo.ListTypes(ctx)
	if err != nil {
		return nil, &domain.PersistenceError{Step: StepResolveType, Err: err}
	}
	for i := range types {
		if types[i].Code == code {
			return &types[i], nil
		}
	}
	needle := strings.ToLower(code)
	for i := range types {
		if strings.Contains(strings.ToLower(types[i].Description), needle) {
			return &types[i], nil
		}
	}
	return nil, &domain.ResolutionError{Code: code}
}

// persistenceFailure envuelve el error con su paso, registra el riesgo de
// cabecera huérfana cuando aplica y actualiza métricas.
func (uc *CommitUseCase) persistenceFailure(step string, state State, exitID string, err error) error {
	uc.metrics.ExitCommit(observability.CommitResultPersistence)
	uc.metrics.CommitStepFailure(step)
	ev := uc.log.Error().Err(err).Str("step", step).Str("state", string(state))
	if exitID != "" {
		ev = ev.Str("exit_id", exitID).Bool("orphan_header", true)
	}
	ev.Msg("falla de persistencia en el commit")
	return &domain.PersistenceError{Step: step, Err: err}
}
