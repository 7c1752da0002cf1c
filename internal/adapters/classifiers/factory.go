package classifiers

import (
	"fmt"

	"github.com/velora-health/patient-assistant/internal/domain/providers"
	"github.com/velora-health/patient-assistant/pkg/config"
	apperrors "github.com/velora-health/patient-assistant/pkg/errors"
)

// BuildRegistry constructs the classifier registry from the configured
// artifact table. A classifier that is configured but cannot be loaded is a
// ConfigurationError: required artifacts are fatal at startup rather than
// failing lazily on the first request.
func BuildRegistry(configs map[string]config.ClassifierConfig) (*providers.ClassifierRegistry, error) {
	registry := providers.NewClassifierRegistry()

	for condition, cc := range configs {
		classifier, err := build(condition, cc)
		if err != nil {
			return nil, apperrors.NewConfigurationError(
				fmt.Sprintf("failed to load classifier for condition %q", condition), err)
		}
		registry.Register(condition, classifier)
	}

	return registry, nil
}

func build(condition string, cc config.ClassifierConfig) (providers.Classifier, error) {
	switch cc.Kind {
	case "logistic", "":
		if cc.Path == "" {
			return nil, fmt.Errorf("logistic classifier for %q has no artifact path", condition)
		}
		return LoadLogistic(cc.Path)
	case "remote":
		if cc.URL == "" {
			return nil, fmt.Errorf("remote classifier for %q has no endpoint URL", condition)
		}
		return NewRemoteClassifier(cc.URL), nil
	default:
		return nil, fmt.Errorf("unknown classifier kind %q for %q", cc.Kind, condition)
	}
}
