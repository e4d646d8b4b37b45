package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name TableLoader --dir ../usecase --output usecase --outpkg usecasemock --filename table_loader_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name ReportGenerator --dir ../interfaces/httpapi --output httpapi --outpkg httpapimock --filename report_generator_mock.go
