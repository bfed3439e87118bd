package build

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

const (
	profileReadErrorTemplateConstant   = "unable to read profile %s: %w"
	buildInfoReadErrorTemplateConstant = "unable to read build info %s: %w"
	buildInfoStatErrorTemplateConstant = "unable to inspect build info %s: %w"
)

// TokenSet holds the whitespace-delimited tokens of a settings file.
type TokenSet map[string]struct{}

// ParseTokenSet splits contents on whitespace.
func ParseTokenSet(contents string) TokenSet {
	tokens := make(TokenSet)
	for _, token := range strings.Fields(contents) {
		tokens[token] = struct{}{}
	}
	return tokens
}

// IsSubsetOf reports whether every token of the receiver is present in other.
func (tokens TokenSet) IsSubsetOf(other TokenSet) bool {
	for token := range tokens {
		if _, present := other[token]; !present {
			return false
		}
	}
	return true
}

// FileReader reads file contents.
type FileReader interface {
	Stat(path string) (fs.FileInfo, error)
	ReadFile(path string) ([]byte, error)
}

// ReadTokenSet reads path and parses its tokens.
func ReadTokenSet(reader FileReader, path string) (TokenSet, error) {
	contents, readError := reader.ReadFile(path)
	if readError != nil {
		return nil, readError
	}
	return ParseTokenSet(string(contents)), nil
}

// Fingerprint compares the selected profile with the settings recorded for an existing build.
type Fingerprint struct {
	ProfileTokens    TokenSet
	BuildInfoTokens  TokenSet
	BuildInfoPresent bool
}

// Matches reports whether the existing build was configured with every profile setting.
func (fingerprint Fingerprint) Matches() bool {
	return fingerprint.BuildInfoPresent && fingerprint.ProfileTokens.IsSubsetOf(fingerprint.BuildInfoTokens)
}

// ReadFingerprint loads the build info and profile token sets. The profile is only read when build info exists.
func ReadFingerprint(reader FileReader, profilePath string, buildInfoPath string) (Fingerprint, error) {
	buildInfoInfo, statError := reader.Stat(buildInfoPath)
	if statError != nil {
		if errors.Is(statError, fs.ErrNotExist) {
			return Fingerprint{}, nil
		}
		return Fingerprint{}, fmt.Errorf(buildInfoStatErrorTemplateConstant, buildInfoPath, statError)
	}
	if buildInfoInfo.IsDir() {
		return Fingerprint{}, nil
	}

	buildInfoTokens, buildInfoError := ReadTokenSet(reader, buildInfoPath)
	if buildInfoError != nil {
		return Fingerprint{}, fmt.Errorf(buildInfoReadErrorTemplateConstant, buildInfoPath, buildInfoError)
	}

	profileTokens, profileError := ReadTokenSet(reader, profilePath)
	if profileError != nil {
		return Fingerprint{}, fmt.Errorf(profileReadErrorTemplateConstant, profilePath, profileError)
	}

	return Fingerprint{ProfileTokens: profileTokens, BuildInfoTokens: buildInfoTokens, BuildInfoPresent: true}, nil
}

// ShouldConfigure reports whether the build folder must be (re)configured before building.
func ShouldConfigure(reader FileReader, force bool, profilePath string, buildInfoPath string) (bool, error) {
	if force {
		return true, nil
	}

	fingerprint, fingerprintError := ReadFingerprint(reader, profilePath, buildInfoPath)
	if fingerprintError != nil {
		return false, fingerprintError
	}

	return !fingerprint.Matches(), nil
}
