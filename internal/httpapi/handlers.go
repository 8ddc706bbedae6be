package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ayase-dev/otodoke/internal/contract"
	"github.com/ayase-dev/otodoke/internal/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "otodoke"})
}

func (s *Server) listProducts(c *gin.Context) {
	summaries, err := s.catalog.Products(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	items := make([]contract.ProductSummaryView, 0, len(summaries))
	for _, p := range summaries {
		items = append(items, contract.ProductSummaryView{
			ProductID:    p.ProductID,
			Title:        p.Title,
			VariantCount: p.VariantCount,
		})
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (s *Server) productDetail(c *gin.Context) {
	tag := requestLocale(c)
	product, err := s.catalog.ProductDetail(c.Request.Context(), c.Param("id"), tag)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, contract.ProductViewOf(product, s.cal, tag))
}

func (s *Server) deliveryReport(c *gin.Context) {
	tag := requestLocale(c)
	onlyDelaying := filterFlag(c)
	report, err := s.catalog.DeliveryReport(c.Request.Context(), c.Param("id"), tag, onlyDelaying)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// requestLocale negotiates the presentation locale from Accept-Language.
// The client widget negotiates independently from the document language;
// the two must agree for a rendered page, which is the deployment's job.
func requestLocale(c *gin.Context) domain.Locale {
	return domain.MatchAcceptLanguage(c.GetHeader("Accept-Language"))
}

// filterFlag reads the onlyDelaying toggle; it defaults to true so the
// report endpoint answers "what is late" unless asked for the full set.
func filterFlag(c *gin.Context) bool {
	raw := c.Query("filter")
	if raw == "" {
		return true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return true
	}
	return v
}

func (s *Server) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
	case domain.IsIntegrityError(err):
		s.logger.Error("catalog integrity fault",
			zap.String("request_id", c.GetString("request_id")),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "catalog integrity error"})
	default:
		s.logger.Error("request failed",
			zap.String("request_id", c.GetString("request_id")),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
