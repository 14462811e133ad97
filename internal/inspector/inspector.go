package inspector

import (
	"os"

	"github.com/IvanShishkin/permlens/internal/filesystem"
	"github.com/IvanShishkin/permlens/pkg/models"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Inspector analyzes the permission state of a single path
type Inspector struct {
	fs       afero.Fs
	resolver filesystem.IdentityResolver
	logger   *zap.Logger
	rules    []Rule
}

// NewInspector creates a new inspector reading metadata from fs
func NewInspector(fs afero.Fs, resolver filesystem.IdentityResolver, logger *zap.Logger) *Inspector {
	return &Inspector{
		fs:       fs,
		resolver: resolver,
		logger:   logger,
		rules:    DefaultRules(),
	}
}

// Analyze inspects path and returns its permission state. On failure the
// error is always a *models.AnalysisError and the result is nil.
func (i *Inspector) Analyze(path string) (*models.InspectionResult, error) {
	normalized := filesystem.NormalizePath(path)

	exists, err := afero.Exists(i.fs, normalized)
	if err != nil {
		i.logger.Warn("Existence check failed", zap.String("path", normalized), zap.Error(err))
		return nil, models.NewMetadataError(normalized, err)
	}
	if !exists {
		i.logger.Debug("Path not found", zap.String("path", normalized))
		return nil, models.NewNotFoundError(normalized)
	}

	// The entry may vanish between the existence check and this read
	info, err := i.fs.Stat(normalized)
	if err != nil {
		i.logger.Warn("Metadata read failed", zap.String("path", normalized), zap.Error(err))
		return nil, models.NewMetadataError(normalized, err)
	}

	mode := info.Mode()
	raw := RawMode(mode)
	kind := models.KindOf(mode)
	perms := DecodePermissions(raw)

	result := &models.InspectionResult{
		Entry: models.Entry{
			Path:    normalized,
			Kind:    kind,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		},
		Ownership:   i.ownership(info),
		Mode:        raw,
		Octal:       OctalString(raw),
		Symbolic:    SymbolicString(mode),
		Permissions: perms,
		Warnings:    DeriveWarnings(i.rules, kind, perms),
	}

	i.logger.Debug("Analyzed path",
		zap.String("path", normalized),
		zap.String("kind", string(kind)),
		zap.String("mode", result.Octal),
		zap.Int("warnings", len(result.Warnings)))

	return result, nil
}

// ownership reads numeric ids and resolves names. Owner and group names are
// resolved together: if either lookup fails both are reported unavailable.
func (i *Inspector) ownership(info os.FileInfo) models.Ownership {
	uid, gid, ok := filesystem.OwnerIDs(info)
	o := models.Ownership{UID: uid, GID: gid, IDsReported: ok}

	if !ok || i.resolver == nil || !i.resolver.Supported() {
		o.Owner = models.UnavailableName(models.NameUnsupported)
		o.Group = models.UnavailableName(models.NameUnsupported)
		return o
	}

	owner, err := i.resolver.UserName(uid)
	if err != nil {
		i.logger.Debug("Owner lookup failed", zap.Uint32("uid", uid), zap.Error(err))
		return lookupFailed(o)
	}
	group, err := i.resolver.GroupName(gid)
	if err != nil {
		i.logger.Debug("Group lookup failed", zap.Uint32("gid", gid), zap.Error(err))
		return lookupFailed(o)
	}

	o.Owner = models.ResolvedName(owner)
	o.Group = models.ResolvedName(group)
	return o
}

func lookupFailed(o models.Ownership) models.Ownership {
	o.Owner = models.UnavailableName(models.NameLookupFailed)
	o.Group = models.UnavailableName(models.NameLookupFailed)
	return o
}
