package nlp

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonesrussell/crimewatch/internal/domain"
	"github.com/jonesrussell/crimewatch/internal/logger"
	"github.com/jonesrussell/crimewatch/internal/textutil"
)

// listSeparator joins multi-valued record fields.
const listSeparator = "; "

// Processor composes the extraction stages into one article pass.
type Processor struct {
	mapper     *RoleMapper
	classifier *CrimeTypeClassifier
	counts     *CountExtractor
	method     *MethodMotive
	log        logger.Logger
	now        func() time.Time
}

// NewProcessor wires the extraction engine around the given
// recognizer.
func NewProcessor(rec Recognizer, log logger.Logger) *Processor {
	return &Processor{
		mapper:     NewRoleMapper(rec),
		classifier: NewCrimeTypeClassifier(DefaultCrimeCategories()),
		counts:     NewCountExtractor(),
		method:     NewMethodMotive(),
		log:        log,
		now:        time.Now,
	}
}

// Process extracts a structured record from a raw article. Empty
// headline or content degrade to empty fields; only a recognizer
// failure aborts the article.
func (p *Processor) Process(art domain.RawArticle) (*domain.Record, error) {
	fullText := strings.TrimSpace(art.Headline + " " + art.Content)

	entities, err := p.mapper.Extract(fullText)
	if err != nil {
		return nil, fmt.Errorf("extract entities: %w", err)
	}

	crimeTypes := p.classifier.Classify(fullText)
	counts := p.counts.Extract(fullText)
	how, why := p.method.Extract(fullText)

	rec := &domain.Record{
		ID:              uuid.NewString(),
		DateScraped:     p.now(),
		ArticleURL:      art.URL,
		Source:          art.Source,
		Headline:        textutil.Normalize(art.Headline),
		PublicationDate: textutil.ExtractDate(fullText),
		Who:             strings.Join(entities[RoleWho], listSeparator),
		What:            strings.Join(crimeTypes, listSeparator),
		Where:           strings.Join(entities[RoleWhere], listSeparator),
		When:            strings.Join(entities[RoleWhen], listSeparator),
		How:             how,
		Why:             why,
		EconomicLoss:    textutil.ExtractMoney(fullText),
		Injuries:        counts.Injuries,
		Fatalities:      counts.Fatalities,
		Arrests:         counts.Arrests,
		FullText:        textutil.Normalize(fullText),
	}

	p.log.Debug("article processed",
		logger.String("url", art.URL),
		logger.String("headline", rec.Headline),
		logger.Strings("crime_types", crimeTypes),
	)
	return rec, nil
}
