package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Provider --dir ../domain/football --output domain/football --outpkg footballmock --filename provider_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Writer --dir ../infrastructure/archive --output infrastructure/archive --outpkg archivemock --filename writer_mock.go
