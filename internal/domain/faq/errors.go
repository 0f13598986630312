package faq

import apperrors "github.com/yanqian/faqbot/pkg/errors"

func startupError(message string, err error) error {
	return apperrors.Wrap(apperrors.CodeStartupConfig, message, err)
}

// IsStartupConfigurationError reports whether err means the knowledge base
// cannot back a running service: no entries, blank rows, or no vocabulary.
func IsStartupConfigurationError(err error) bool {
	return apperrors.IsCode(err, apperrors.CodeStartupConfig)
}
