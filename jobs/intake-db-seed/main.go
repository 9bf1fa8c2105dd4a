package main

import (
	"log/slog"
)

func main() {
	form := intakeFormCatalog()

	for _, instanceID := range conf.InstanceIDs {
		slog.Info("Seeding intake form catalog", slog.String("instanceID", instanceID), slog.String("formKey", form.Key))

		if err := intakeDBService.SaveForm(instanceID, form); err != nil {
			slog.Error("Failed to save form", slog.String("instanceID", instanceID), slog.String("error", err.Error()))
			continue
		}

		if err := intakeDBService.MarkOtherFormsInactive(instanceID, form.Key); err != nil {
			slog.Error("Failed to deactivate other forms", slog.String("instanceID", instanceID), slog.String("error", err.Error()))
		}

		if conf.AdminUser.Email != "" {
			admin, err := intakeUserDBService.EnsureAdminUser(instanceID, conf.AdminUser.Email, conf.AdminUser.Name)
			if err != nil {
				slog.Error("Failed to ensure admin user", slog.String("instanceID", instanceID), slog.String("error", err.Error()))
			} else {
				slog.Info("Admin user ready", slog.String("instanceID", instanceID), slog.String("email", admin.Email))
			}
		}

		slog.Info("Instance seeded",
			slog.String("instanceID", instanceID),
			slog.Int("pages", len(form.Pages)),
			slog.Int("questions", form.QuestionCount()),
		)
	}
}
